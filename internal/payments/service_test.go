package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	"github.com/avalosmendoza/wedding-backend/internal/gifts"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
)

type fakeStripe struct {
	createdParams *stripe.CheckoutSessionCreateParams
	createSession *stripe.CheckoutSession
	createErr     error

	retrieved       string
	retrieveSession *stripe.CheckoutSession
	retrieveErr     error
}

func (f *fakeStripe) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	f.createdParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createSession, nil
}

func (f *fakeStripe) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	f.retrieved = sessionID
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.retrieveSession, nil
}

func newTestService(t *testing.T, sc StripeClient) (*Service, Repository) {
	t.Helper()

	repo := NewRepository(setupPaymentsTestDB(t))
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Catalog: gifts.NewCatalog(),
		Stripe:  sc,
	})
	require.NoError(t, err)
	return svc, repo
}

func TestCreateCheckoutFixedTier(t *testing.T) {
	sc := &fakeStripe{
		createSession: &stripe.CheckoutSession{
			ID:  "cs_test_abc",
			URL: "https://checkout.stripe.com/c/pay/cs_test_abc",
		},
	}
	svc, repo := newTestService(t, sc)

	result, err := svc.CreateCheckout(context.Background(), CheckoutInput{
		PackageID: enums.GiftPackageMedium,
		GuestName: "Ada",
		OriginURL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", result.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_abc", result.URL)

	require.NotNil(t, sc.createdParams)
	require.Len(t, sc.createdParams.LineItems, 1)
	assert.Equal(t, int64(5000), *sc.createdParams.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "https://example.com?session_id={CHECKOUT_SESSION_ID}&success=true", *sc.createdParams.SuccessURL)
	assert.Equal(t, "https://example.com?cancelled=true", *sc.createdParams.CancelURL)
	assert.Equal(t, map[string]string{
		"package_id": "medium",
		"guest_name": "Ada",
		"source":     "wedding_gift",
	}, sc.createdParams.Metadata)

	stored, err := repo.FindBySessionID(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPending, stored.PaymentStatus)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Ada", stored.GuestName)
}

func TestCreateCheckoutCustomAmount(t *testing.T) {
	sc := &fakeStripe{
		createSession: &stripe.CheckoutSession{ID: "cs_test_custom", URL: "https://stripe/x"},
	}
	svc, repo := newTestService(t, sc)

	amount := decimal.NewFromFloat(72.50)
	_, err := svc.CreateCheckout(context.Background(), CheckoutInput{
		PackageID:    enums.GiftPackageCustom,
		GuestName:    "Bob",
		CustomAmount: &amount,
		OriginURL:    "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7250), *sc.createdParams.LineItems[0].PriceData.UnitAmount)

	stored, err := repo.FindBySessionID(context.Background(), "cs_test_custom")
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(amount))
}

func TestCreateCheckoutCustomBelowMinimum(t *testing.T) {
	svc, _ := newTestService(t, &fakeStripe{})

	amount := decimal.NewFromFloat(0.50)
	_, err := svc.CreateCheckout(context.Background(), CheckoutInput{
		PackageID:    enums.GiftPackageCustom,
		GuestName:    "Bob",
		CustomAmount: &amount,
		OriginURL:    "https://example.com",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Equal(t, "Custom amount must be at least $1.00", pkgerrors.As(err).Message())
}

func TestCreateCheckoutUnknownPackage(t *testing.T) {
	svc, _ := newTestService(t, &fakeStripe{})

	_, err := svc.CreateCheckout(context.Background(), CheckoutInput{
		PackageID: enums.GiftPackageID("enormous"),
		GuestName: "Bob",
		OriginURL: "https://example.com",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Equal(t, "Invalid gift package", pkgerrors.As(err).Message())
}

func TestCreateCheckoutFixedTierIgnoresCustomAmount(t *testing.T) {
	sc := &fakeStripe{
		createSession: &stripe.CheckoutSession{ID: "cs_test_small", URL: "https://stripe/x"},
	}
	svc, _ := newTestService(t, sc)

	amount := decimal.NewFromInt(999)
	_, err := svc.CreateCheckout(context.Background(), CheckoutInput{
		PackageID:    enums.GiftPackageSmall,
		GuestName:    "Ada",
		CustomAmount: &amount,
		OriginURL:    "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), *sc.createdParams.LineItems[0].PriceData.UnitAmount)
}

func TestStatusReconcilesStoredTransaction(t *testing.T) {
	sc := &fakeStripe{
		retrieveSession: &stripe.CheckoutSession{
			ID:            "cs_test_abc",
			Status:        stripe.CheckoutSessionStatusComplete,
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			AmountTotal:   5000,
			Currency:      stripe.CurrencyUSD,
		},
	}
	svc, repo := newTestService(t, sc)
	insertTransaction(t, repo, "cs_test_abc", time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC))

	result, err := svc.Status(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", result.SessionID)
	assert.Equal(t, "complete", result.Status)
	assert.Equal(t, "paid", result.PaymentStatus)
	assert.Equal(t, int64(5000), result.AmountTotal)
	assert.Equal(t, "usd", result.Currency)
	assert.Equal(t, "Ada", result.GuestName)

	stored, err := repo.FindBySessionID(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, stored.PaymentStatus)
}

func TestStatusUnknownSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeStripe{})

	_, err := svc.Status(context.Background(), "cs_test_missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Equal(t, "Transaction not found", pkgerrors.As(err).Message())
}

func TestStatusStripeFailure(t *testing.T) {
	sc := &fakeStripe{retrieveErr: assert.AnError}
	svc, repo := newTestService(t, sc)
	insertTransaction(t, repo, "cs_test_abc", time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC))

	_, err := svc.Status(context.Background(), "cs_test_abc")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
