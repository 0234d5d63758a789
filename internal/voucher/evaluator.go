package voucher

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/models"
)

// Failure codes returned to the client when a voucher does not apply.
const (
	CodeInvalid    = "INVALID"
	CodeExpired    = "EXPIRED"
	CodeFirstOrder = "FIRST_ORDER"
	CodeMinPrice   = "MIN_PRICE"
)

var messages = map[string]string{
	CodeInvalid:    "Voucher không hợp lệ!",
	CodeExpired:    "Voucher đã hết hạn sử dụng!",
	CodeFirstOrder: "Voucher chỉ áp dụng cho khách hàng mới!",
	CodeMinPrice:   "Giá trị đơn hàng chưa đạt mức tối thiểu!",
}

// Result is the outcome of evaluating a voucher against a user and cart total.
type Result struct {
	Valid      bool
	Ecode      string
	Message    string
	MinPrice   int64
	OrderCount int64
	Voucher    *models.Voucher
}

func invalid(ecode string) Result {
	return Result{Valid: false, Ecode: ecode, Message: messages[ecode]}
}

// Evaluator validates vouchers by checking the validity window and then each
// rule in priority order, stopping at the first failure. Evaluation only
// reads; it never mutates voucher or order state.
type Evaluator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEvaluator constructs an Evaluator using the wall clock.
func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db, now: time.Now}
}

// Validate evaluates the named voucher for the user and cart total.
func (e *Evaluator) Validate(code string, userID uuid.UUID, cartTotal int64) (Result, error) {
	var v models.Voucher
	err := e.db.
		Preload("Rules", func(db *gorm.DB) *gorm.DB { return db.Order("priority asc") }).
		Where("voucher_name = ?", code).
		First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return invalid(CodeInvalid), nil
		}
		return Result{}, fmt.Errorf("load voucher %q: %w", code, err)
	}

	now := e.now()
	if now.Before(v.StartDate) || now.After(v.EndDate) {
		return invalid(CodeExpired), nil
	}

	for _, rule := range v.Rules {
		res, err := e.evaluateRule(rule, userID, cartTotal)
		if err != nil {
			return Result{}, err
		}
		if !res.Valid {
			return res, nil
		}
	}

	return Result{Valid: true, Voucher: &v}, nil
}

// evaluateRule checks a single rule. Unknown rule types fail closed: the
// voucher is reported invalid rather than the rule being skipped.
func (e *Evaluator) evaluateRule(rule models.VoucherRule, userID uuid.UUID, cartTotal int64) (Result, error) {
	switch rule.RuleType {
	case models.RuleMinPrice:
		if cartTotal < rule.RuleValue {
			res := invalid(CodeMinPrice)
			res.MinPrice = rule.RuleValue
			return res, nil
		}
		return Result{Valid: true}, nil

	case models.RuleFirstOrder:
		var count int64
		if err := e.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return Result{}, fmt.Errorf("count orders for user %s: %w", userID, err)
		}
		if count > 0 {
			res := invalid(CodeFirstOrder)
			res.OrderCount = count
			return res, nil
		}
		return Result{Valid: true}, nil

	default:
		log.Printf("[Voucher] Unknown rule type %q on voucher %s", rule.RuleType, rule.VoucherID)
		return invalid(CodeInvalid), nil
	}
}
