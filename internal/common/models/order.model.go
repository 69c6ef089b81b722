package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONB is a custom type for GORM to handle JSONB columns
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("null")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(v)
	case string:
		*j = JSONB(v)
	default:
		return errors.New("unsupported type for JSONB")
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSONB: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// CheckoutOrder is one completed (or attempted) checkout submission.
type CheckoutOrder struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID          string     `json:"order_id" gorm:"type:varchar(100);uniqueIndex;not null"`
	TokenID          string     `json:"token_id" gorm:"type:varchar(255);not null"`
	CustomerName     string     `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail    string     `json:"customer_email" gorm:"type:varchar(255);index"`
	TrialAmountCents int64      `json:"trial_amount_cents" gorm:"not null"`
	TrialDays        int        `json:"trial_days" gorm:"not null"`
	Currency         string     `json:"currency" gorm:"type:varchar(10);not null;default:'usd'"`
	PaymentMethod    string     `json:"payment_method" gorm:"type:varchar(50)"`
	ProviderCustomer string     `json:"provider_customer" gorm:"type:varchar(255)"`
	ProviderCharge   string     `json:"provider_charge" gorm:"type:varchar(255)"`
	Status           string     `json:"status" gorm:"type:varchar(50);not null;default:'pending';index"`
	Metadata         JSONB      `json:"metadata" gorm:"type:jsonb"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	PaidAt           *time.Time `json:"paid_at"`
	NotifiedAt       *time.Time `json:"notified_at"`
}

func (CheckoutOrder) TableName() string {
	return "checkout_orders"
}
