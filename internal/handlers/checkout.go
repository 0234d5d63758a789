package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/checkout"
	"github.com/example/orchid/internal/location"
	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/models"
	"github.com/example/orchid/internal/services"
)

// CheckoutHandler serves the checkout flow: cart review, shipping fee
// calculation, shipping info, default address updates and order submission.
type CheckoutHandler struct {
	db         *gorm.DB
	resolver   *location.Resolver
	shipping   *services.ShippingService
	submission *checkout.Service
	telegram   *services.TelegramService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(db *gorm.DB, resolver *location.Resolver, shipping *services.ShippingService, submission *checkout.Service, telegram *services.TelegramService) *CheckoutHandler {
	return &CheckoutHandler{
		db:         db,
		resolver:   resolver,
		shipping:   shipping,
		submission: submission,
		telegram:   telegram,
	}
}

func (h *CheckoutHandler) currentUser(c *fiber.Ctx) (models.User, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return models.User{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.User{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return models.User{}, err
	}
	return user, nil
}

// GetCheckoutCart returns the cart contents ready for the checkout page.
func (h *CheckoutHandler) GetCheckoutCart(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var cart models.Cart
	if err := h.db.Preload("Items.Product").Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "cart not found")
		}
		return err
	}

	totalQuantity := lo.SumBy(cart.Items, func(i models.CartItem) int { return i.Quantity })
	totalDiscounted := lo.SumBy(cart.Items, func(i models.CartItem) int64 {
		return i.TotalPrice - i.DiscountedAmount
	})
	allItemsTypeOne := lo.EveryBy(cart.Items, func(i models.CartItem) bool {
		return i.Product != nil && i.Product.Type == 1
	})

	return c.JSON(fiber.Map{
		"success":                true,
		"cart_items":             cart.Items,
		"total_quantity":         totalQuantity,
		"total_discounted_price": totalDiscounted,
		"all_items_type_one":     allItemsTypeOne,
		"user": fiber.Map{
			"id":             user.ID,
			"full_name":      user.FullName,
			"phone":          user.Phone,
			"province_city":  user.ProvinceCity,
			"district":       user.District,
			"commune_ward":   user.CommuneWard,
			"address_detail": user.AddressDetail,
		},
	})
}

type shippingFeeRequest struct {
	ToDistrictID int    `json:"to_district_id"`
	ToWardCode   string `json:"to_ward_code"`
}

// CalculateShippingFee quotes the delivery fee for explicit location codes.
func (h *CheckoutHandler) CalculateShippingFee(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req shippingFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ToDistrictID == 0 || req.ToWardCode == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "to_district_id and to_ward_code are required",
		})
	}

	var cart models.Cart
	if err := h.db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		return err
	}

	fee, err := h.shipping.CalculateFee(req.ToDistrictID, req.ToWardCode, cart.ID)
	if err != nil {
		log.Printf("[Checkout] Shipping fee calculation failed for user %s, cart %s: %v", user.ID, cart.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "An error occurred while calculating shipping fee",
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"shipping_fee": fee,
	})
}

// GetShippingInfo returns the user's stored address with resolved location
// codes. A miss in the dataset degrades to partial info rather than failing.
func (h *CheckoutHandler) GetShippingInfo(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"success":  true,
		"fullname": user.FullName,
		"phone":    user.Phone,
		"province": user.ProvinceCity,
		"district": user.District,
		"ward":     user.CommuneWard,
	}

	codes, err := h.resolver.Resolve(user.ProvinceCity, user.District, user.CommuneWard)
	if err != nil {
		log.Printf("[Checkout] Could not map stored address for user %s: %v", user.ID, err)
	} else {
		resp["district_id"] = codes.DistrictID
		resp["ward_code"] = codes.WardCode
		resp["province_id"] = codes.ProvinceID
	}

	return c.JSON(resp)
}

type updateAddressRequest struct {
	Address  string `json:"address"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

// UpdateDefaultAddress replaces the user's stored default delivery address.
func (h *CheckoutHandler) UpdateDefaultAddress(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req updateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Address == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid data",
			"errors":  fiber.Map{"address": "address is required"},
		})
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"province_city":  req.Province,
		"district":       req.District,
		"commune_ward":   req.Ward,
		"address_detail": req.Address,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Địa chỉ đã được cập nhật thành công",
	})
}

type submitOrderRequest struct {
	VoucherID        string           `json:"voucher_id"`
	ProvisionalPrice int64            `json:"provisional_price"`
	DeliveryCost     int64            `json:"delivery_cost"`
	TotalPrice       int64            `json:"total_price"`
	Address          checkout.Address `json:"address"`
	PaymentMethod    string           `json:"payment_method"`
	AdditionalNote   string           `json:"additional_note"`
}

// SubmitOrder places the order for the user's cart.
func (h *CheckoutHandler) SubmitOrder(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req submitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	sub := checkout.Submission{
		ProvisionalPrice: req.ProvisionalPrice,
		DeliveryCost:     req.DeliveryCost,
		TotalPrice:       req.TotalPrice,
		Address:          req.Address,
		PaymentMethod:    req.PaymentMethod,
		AdditionalNote:   req.AdditionalNote,
	}
	if req.VoucherID != "" {
		voucherID, err := uuid.Parse(req.VoucherID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid voucher id")
		}
		sub.VoucherID = &voucherID
	}

	orderID, err := h.submission.Submit(user, sub)
	if err != nil {
		return submitOrderError(c, err)
	}

	if h.telegram != nil {
		go h.notifyOrder(orderID, user, sub)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"order_id": orderID,
		"message":  "Order created successfully",
	})
}

func submitOrderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Order creation failed"

	switch {
	case errors.Is(err, checkout.ErrInvalidAddress):
		status = fiber.StatusUnprocessableEntity
		message = "Invalid address format"
	case errors.Is(err, checkout.ErrEmptyCart):
		status = fiber.StatusUnprocessableEntity
		message = "Cart is empty"
	case errors.Is(err, checkout.ErrInsufficientStock):
		status = fiber.StatusConflict
		message = "Insufficient stock"
	case errors.Is(err, checkout.ErrShippingFeeUnavailable):
		status = fiber.StatusBadGateway
		message = "Shipping fee unavailable"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *CheckoutHandler) notifyOrder(orderID uuid.UUID, user models.User, sub checkout.Submission) {
	// Read the committed row: the delivery cost may have been recomputed
	// during submission.
	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		log.Printf("[Checkout] Failed to load order %s for notification: %v", orderID, err)
		return
	}

	address := fmt.Sprintf("%s, %s, %s, %s",
		sub.Address.AddressDetail, sub.Address.CommuneWard, sub.Address.District, sub.Address.ProvinceCity)

	if err := h.telegram.NotifyNewOrder(services.OrderNotification{
		OrderID:       orderID.String(),
		CustomerName:  user.FullName,
		CustomerPhone: user.Phone,
		Address:       address,
		ItemCount:     len(order.Items),
		DeliveryCost:  order.DeliveryCost,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
	}); err != nil {
		log.Printf("[Checkout] Telegram notification failed for order %s: %v", orderID, err)
	}
}
