package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named in-memory DB: GORM pools connections, so the name keeps every
	// connection on the same database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS payment_transactions (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL UNIQUE,
  package_id TEXT NOT NULL,
  guest_name TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'usd',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  timestamp DATETIME NOT NULL,
  metadata TEXT
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func insertTransaction(t *testing.T, repo Repository, sessionID string, ts time.Time) *models.PaymentTransaction {
	t.Helper()

	metadata, err := json.Marshal(map[string]string{"source": "wedding_gift"})
	require.NoError(t, err)

	transaction := &models.PaymentTransaction{
		ID:            uuid.New(),
		SessionID:     sessionID,
		PackageID:     enums.GiftPackageMedium.String(),
		GuestName:     "Ada",
		Amount:        decimal.NewFromInt(50),
		Currency:      "usd",
		PaymentStatus: enums.PaymentStatusPending,
		Timestamp:     ts,
		Metadata:      metadata,
	}
	require.NoError(t, repo.Insert(context.Background(), transaction))
	return transaction
}

func TestFindBySessionID(t *testing.T) {
	repo := NewRepository(setupPaymentsTestDB(t))

	ts := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	inserted := insertTransaction(t, repo, "cs_test_abc", ts)

	found, err := repo.FindBySessionID(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, found.ID)
	assert.Equal(t, enums.PaymentStatusPending, found.PaymentStatus)

	_, err = repo.FindBySessionID(context.Background(), "cs_test_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatusBySessionID(t *testing.T) {
	repo := NewRepository(setupPaymentsTestDB(t))

	ts := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	insertTransaction(t, repo, "cs_test_abc", ts)

	err := repo.UpdateStatusBySessionID(context.Background(), "cs_test_abc", enums.PaymentStatusPaid)
	require.NoError(t, err)

	found, err := repo.FindBySessionID(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, found.PaymentStatus)
}

func TestUpdateStatusUnknownSessionIsNoop(t *testing.T) {
	repo := NewRepository(setupPaymentsTestDB(t))

	err := repo.UpdateStatusBySessionID(context.Background(), "cs_test_unknown", enums.PaymentStatusPaid)
	assert.NoError(t, err)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewRepository(setupPaymentsTestDB(t))

	base := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	oldest := insertTransaction(t, repo, "cs_test_1", base)
	newest := insertTransaction(t, repo, "cs_test_2", base.Add(time.Minute))

	listed, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newest.SessionID, listed[0].SessionID)
	assert.Equal(t, oldest.SessionID, listed[1].SessionID)
}
