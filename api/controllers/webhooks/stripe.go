package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

// maxWebhookBody bounds the payload read; Stripe events are far smaller.
const maxWebhookBody = 1 << 16

type stripeEventHandler interface {
	HandleEvent(ctx context.Context, event stripe.Event) error
}

type webhookAck struct {
	Status string `json:"status"`
}

// StripeWebhook verifies the event signature and applies the event.
// The signature check runs even when the header is absent so every
// verification failure takes the same path.
func StripeWebhook(svc stripeEventHandler, signingSecret string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(r.Context(), w, logg,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read webhook payload"))
			return
		}

		event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), signingSecret)
		if err != nil {
			responses.WriteError(r.Context(), w, logg,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify webhook signature"))
			return
		}

		ctx := logg.WithField(r.Context(), "event_id", event.ID)
		if err := svc.HandleEvent(ctx, event); err != nil {
			responses.WriteError(ctx, w, logg, err)
			return
		}
		responses.WriteJSON(ctx, w, logg, http.StatusOK, webhookAck{Status: "success"})
	}
}
