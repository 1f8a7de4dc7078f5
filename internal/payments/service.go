package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/avalosmendoza/wedding-backend/internal/gifts"
	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
)

const (
	currencyUSD    = "usd"
	metadataSource = "wedding_gift"
)

var minCustomAmount = decimal.NewFromInt(1)

// StripeClient is the surface of the Stripe wrapper the service uses.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// CheckoutInput carries a validated checkout request.
type CheckoutInput struct {
	PackageID    enums.GiftPackageID
	GuestName    string
	CustomAmount *decimal.Decimal
	OriginURL    string
}

// CheckoutResult is returned to the client so it can redirect to Stripe.
type CheckoutResult struct {
	URL       string
	SessionID string
}

// StatusResult merges the live Stripe view with the stored guest name.
type StatusResult struct {
	SessionID     string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	GuestName     string
}

type ServiceParams struct {
	Repo    Repository
	Catalog *gifts.Catalog
	Stripe  StripeClient
}

type Service struct {
	repo    Repository
	catalog *gifts.Catalog
	stripe  StripeClient
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gift catalog required")
	}
	if params.Stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe client required")
	}
	return &Service{
		repo:    params.Repo,
		catalog: params.Catalog,
		stripe:  params.Stripe,
	}, nil
}

// CreateCheckout validates the request against the catalog, mints a
// Stripe checkout session and persists the pending transaction.
//
// The session is created before the insert; if the insert fails the
// minted session is left in place with no compensating rollback.
func (s *Service) CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	pkg, ok := s.catalog.Lookup(in.PackageID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid gift package")
	}

	amount := pkg.Amount
	if in.PackageID == enums.GiftPackageCustom && in.CustomAmount != nil {
		if in.CustomAmount.LessThan(minCustomAmount) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Custom amount must be at least $1.00")
		}
		amount = *in.CustomAmount
	}

	metadata := map[string]string{
		"package_id": in.PackageID.String(),
		"guest_name": in.GuestName,
		"source":     metadataSource,
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, checkoutSessionParams(pkg, amount, in.OriginURL, metadata))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}

	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode metadata")
	}

	transaction := &models.PaymentTransaction{
		ID:            uuid.New(),
		SessionID:     session.ID,
		PackageID:     in.PackageID.String(),
		GuestName:     in.GuestName,
		Amount:        amount,
		Currency:      currencyUSD,
		PaymentStatus: enums.PaymentStatusPending,
		Timestamp:     time.Now().UTC(),
		Metadata:      rawMetadata,
	}
	if err := s.repo.Insert(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert transaction")
	}

	return &CheckoutResult{URL: session.URL, SessionID: session.ID}, nil
}

// Status looks up the stored transaction, re-queries Stripe for the live
// session state and reconciles the stored payment_status when it drifted.
// Last write wins; there is no ordering check against webhook updates.
func (s *Service) Status(ctx context.Context, sessionID string) (*StatusResult, error) {
	transaction, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find transaction")
	}

	session, err := s.stripe.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch checkout status")
	}

	live := enums.PaymentStatus(session.PaymentStatus)
	if live != "" && live != transaction.PaymentStatus {
		if err := s.repo.UpdateStatusBySessionID(ctx, sessionID, live); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction status")
		}
	}

	return &StatusResult{
		SessionID:     sessionID,
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		GuestName:     transaction.GuestName,
	}, nil
}

// ListTransactions returns every transaction, newest first, unbounded.
func (s *Service) ListTransactions(ctx context.Context) ([]models.PaymentTransaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return transactions, nil
}

func checkoutSessionParams(pkg gifts.Package, amount decimal.Decimal, originURL string, metadata map[string]string) *stripe.CheckoutSessionCreateParams {
	successURL := fmt.Sprintf("%s?session_id={CHECKOUT_SESSION_ID}&success=true", originURL)
	cancelURL := fmt.Sprintf("%s?cancelled=true", originURL)

	return &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata:   metadata,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(currencyUSD),
					// Stripe wants minor units.
					UnitAmount: stripe.Int64(amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(pkg.Name),
						Description: stripe.String(pkg.Description),
					},
				},
			},
		},
	}
}
