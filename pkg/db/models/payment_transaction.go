package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avalosmendoza/wedding-backend/pkg/enums"
)

// PaymentTransaction records one Stripe checkout session per row.
// SessionID is the join key for both status reconciliation and webhook
// correlation; PaymentStatus is the only column that ever changes.
type PaymentTransaction struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     string              `gorm:"column:session_id;not null;unique" json:"session_id"`
	PackageID     string              `gorm:"column:package_id;not null" json:"package_id"`
	GuestName     string              `gorm:"column:guest_name;not null" json:"guest_name"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency      string              `gorm:"column:currency;not null;default:'usd'" json:"currency"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	Timestamp     time.Time           `gorm:"column:timestamp;not null;index" json:"timestamp"`
	Metadata      json.RawMessage     `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
