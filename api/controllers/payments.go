package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	"github.com/avalosmendoza/wedding-backend/api/validators"
	"github.com/avalosmendoza/wedding-backend/internal/payments"
	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

type paymentsService interface {
	CreateCheckout(ctx context.Context, in payments.CheckoutInput) (*payments.CheckoutResult, error)
	Status(ctx context.Context, sessionID string) (*payments.StatusResult, error)
	ListTransactions(ctx context.Context) ([]models.PaymentTransaction, error)
}

type checkoutRequest struct {
	PackageID    string           `json:"package_id" validate:"required"`
	GuestName    string           `json:"guest_name" validate:"required,max=120"`
	CustomAmount *decimal.Decimal `json:"custom_amount"`
	OriginURL    string           `json:"origin_url" validate:"required,url"`
}

type checkoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type paymentStatusResponse struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	GuestName     string `json:"guest_name"`
}

type transactionResponse struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	PackageID     string          `json:"package_id"`
	GuestName     string          `json:"guest_name"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentStatus string          `json:"payment_status"`
	Timestamp     time.Time       `json:"timestamp"`
	Metadata      json.RawMessage `json:"metadata"`
}

// CreateCheckout brokers a Stripe checkout session for a gift package.
func CreateCheckout(svc paymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		result, err := svc.CreateCheckout(r.Context(), payments.CheckoutInput{
			PackageID:    enums.GiftPackageID(req.PackageID),
			GuestName:    req.GuestName,
			CustomAmount: req.CustomAmount,
			OriginURL:    req.OriginURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, checkoutResponse{
			URL:       result.URL,
			SessionID: result.SessionID,
		})
	}
}

// PaymentStatus reports the live session state for the polling client.
func PaymentStatus(svc paymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionId")
		ctx := logg.WithSessionID(r.Context(), sessionID)

		result, err := svc.Status(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, w, logg, err)
			return
		}
		responses.WriteJSON(ctx, w, logg, http.StatusOK, paymentStatusResponse{
			SessionID:     result.SessionID,
			Status:        result.Status,
			PaymentStatus: result.PaymentStatus,
			AmountTotal:   result.AmountTotal,
			Currency:      result.Currency,
			GuestName:     result.GuestName,
		})
	}
}

// ListTransactions returns every gift transaction, newest first.
func ListTransactions(svc paymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions, err := svc.ListTransactions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		out := make([]transactionResponse, 0, len(transactions))
		for _, transaction := range transactions {
			out = append(out, transactionResponse{
				ID:            transaction.ID.String(),
				SessionID:     transaction.SessionID,
				PackageID:     transaction.PackageID,
				GuestName:     transaction.GuestName,
				Amount:        transaction.Amount.InexactFloat64(),
				Currency:      transaction.Currency,
				PaymentStatus: transaction.PaymentStatus.String(),
				Timestamp:     transaction.Timestamp,
				Metadata:      transaction.Metadata,
			})
		}
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, out)
	}
}
