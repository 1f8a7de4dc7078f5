package comments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
)

// RecentLimit caps how many comments the list endpoint ever returns.
const RecentLimit = 50

const cacheKeyRecent = "comments:recent"

// Cache is the subset of the redis client the service uses. A nil Cache
// disables caching entirely; cache failures never fail a request.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

type ServiceParams struct {
	Repo     Repository
	Cache    Cache
	CacheTTL time.Duration
}

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "comments repo required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		repo:     params.Repo,
		cache:    params.Cache,
		cacheTTL: ttl,
	}, nil
}

// Create stores a new comment with a generated id and server-assigned
// timestamp, then drops the cached recent list.
func (s *Service) Create(ctx context.Context, guestName, message string) (*models.Comment, error) {
	comment := &models.Comment{
		ID:        uuid.New(),
		GuestName: guestName,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert comment")
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, s.cache.CacheKey(cacheKeyRecent))
	}
	return comment, nil
}

// ListRecent returns the newest comments, capped at RecentLimit,
// through a cache-aside read when a cache is wired.
func (s *Service) ListRecent(ctx context.Context) ([]models.Comment, error) {
	var key string
	if s.cache != nil {
		key = s.cache.CacheKey(cacheKeyRecent)
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached []models.Comment
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	comments, err := s.repo.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}

	if s.cache != nil {
		if raw, err := json.Marshal(comments); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return comments, nil
}
