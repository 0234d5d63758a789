package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/voucher"
)

// VoucherHandler validates promotional vouchers against the current user and
// cart total.
type VoucherHandler struct {
	evaluator *voucher.Evaluator
}

// NewVoucherHandler constructs a VoucherHandler.
func NewVoucherHandler(evaluator *voucher.Evaluator) *VoucherHandler {
	return &VoucherHandler{evaluator: evaluator}
}

type validateVoucherRequest struct {
	VoucherName string `json:"voucher_name"`
	CartTotal   int64  `json:"cart_total"`
}

// ValidateVoucher checks whether the named voucher applies to the user's
// cart. Rule failures come back with an ecode and rule-specific context.
func (h *VoucherHandler) ValidateVoucher(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req validateVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.VoucherName == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "voucher_name is required")
	}

	result, err := h.evaluator.Validate(req.VoucherName, userID, req.CartTotal)
	if err != nil {
		log.Printf("[Voucher] Validation failed for user %s, voucher %q: %v", userID, req.VoucherName, err)
		return fiber.NewError(fiber.StatusInternalServerError, "voucher validation failed")
	}

	if !result.Valid {
		resp := fiber.Map{
			"valid":      false,
			"ecode":      result.Ecode,
			"message":    result.Message,
			"cart_total": req.CartTotal,
		}
		if result.Ecode == voucher.CodeMinPrice {
			resp["min_price"] = result.MinPrice
		}
		if result.Ecode == voucher.CodeFirstOrder {
			resp["order_count"] = result.OrderCount
		}
		return c.JSON(resp)
	}

	return c.JSON(fiber.Map{
		"valid":               true,
		"voucher_name":        result.Voucher.VoucherName,
		"voucher_type":        result.Voucher.VoucherType,
		"voucher_value":       result.Voucher.Value,
		"voucher_description": result.Voucher.Description,
		"cart_total":          req.CartTotal,
	})
}
