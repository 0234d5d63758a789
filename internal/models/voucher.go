package models

import (
	"time"

	"github.com/google/uuid"
)

// Voucher rule types evaluated in priority order.
const (
	RuleMinPrice   = "MIN_PRICE"
	RuleFirstOrder = "FIRST_ORDER"
)

type Voucher struct {
	BaseModel
	VoucherName string        `gorm:"uniqueIndex" json:"voucher_name"`
	VoucherType string        `json:"voucher_type"`
	Value       int64         `json:"value"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"voucher_start_date"`
	EndDate     time.Time     `json:"voucher_end_date"`
	Rules       []VoucherRule `json:"rules,omitempty"`
}

// VoucherRule is a single typed predicate; all rules of a voucher must pass
// for the voucher to apply.
type VoucherRule struct {
	BaseModel
	VoucherID uuid.UUID `gorm:"type:uuid;index" json:"voucher_id"`
	RuleType  string    `json:"rule_type"`
	RuleValue int64     `json:"rule_value"`
	Priority  int       `json:"priority"`
}
