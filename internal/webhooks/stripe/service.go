package stripe

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v84"

	"github.com/avalosmendoza/wedding-backend/internal/payments"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

// Service applies checkout lifecycle events to stored transactions.
// Every event is acked even when it references an unknown session;
// Stripe retries on non-2xx and these events carry no new information
// for sessions this service never created.
type Service struct {
	repo payments.Repository
	logg *logger.Logger
}

func NewService(repo payments.Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{repo: repo, logg: logg}, nil
}

// HandleEvent routes a verified Stripe event. Unrecognized event types
// are ignored, not errors.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	var status enums.PaymentStatus
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		status = enums.PaymentStatusPaid
	case stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		status = enums.PaymentStatusUnpaid
	case stripe.EventTypeCheckoutSessionExpired:
		status = enums.PaymentStatusExpired
	default:
		s.logg.Info(s.logg.WithField(ctx, "event_type", string(event.Type)), "ignoring stripe event")
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
	}
	if session.ID == "" {
		s.logg.Warn(s.logg.WithField(ctx, "event_type", string(event.Type)), "stripe event without session id")
		return nil
	}

	// For completed sessions Stripe reports the actual payment_status on
	// the session object; prefer it over the event-type mapping.
	if event.Type == stripe.EventTypeCheckoutSessionCompleted && session.PaymentStatus != "" {
		status = enums.PaymentStatus(session.PaymentStatus)
	}

	if err := s.repo.UpdateStatusBySessionID(ctx, session.ID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply webhook status")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"event_type": string(event.Type),
		"session_id": session.ID,
		"status":     status.String(),
	})
	s.logg.Info(ctx, "applied stripe event")
	return nil
}
