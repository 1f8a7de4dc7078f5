package enums

// PaymentStatus tracks the lifecycle of a checkout session's payment.
//
// The column is stored as text: Stripe owns the vocabulary and new values
// are persisted as received rather than rejected.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusExpired PaymentStatus = "expired"
)

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}
