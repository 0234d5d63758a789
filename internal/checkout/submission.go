package checkout

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/location"
	"github.com/example/orchid/internal/models"
)

// CodeResolver maps free-text address names to shipping provider codes.
type CodeResolver interface {
	Resolve(province, district, ward string) (location.Codes, error)
}

// FeeQuoter quotes a delivery fee for a cart shipped to the given codes.
type FeeQuoter interface {
	CalculateFee(districtID int, wardCode string, cartID uuid.UUID) (int64, error)
}

// Submission carries the client-supplied order payload.
type Submission struct {
	VoucherID        *uuid.UUID
	ProvisionalPrice int64
	DeliveryCost     int64
	TotalPrice       int64
	Address          Address
	PaymentMethod    string
	AdditionalNote   string
}

// Service orchestrates order submission: validation, shipping-fee
// reconciliation, then a single atomic persistence step.
type Service struct {
	db       *gorm.DB
	resolver CodeResolver
	fees     FeeQuoter
}

// NewService constructs a checkout Service.
func NewService(db *gorm.DB, resolver CodeResolver, fees FeeQuoter) *Service {
	return &Service{db: db, resolver: resolver, fees: fees}
}

// Submit places an order for the user's cart. External lookups (location
// resolution, fee quoting) complete before the transaction opens; the
// transaction itself either commits the order, its items, the stock
// decrements and the cart clear together, or leaves no trace.
func (s *Service) Submit(user models.User, sub Submission) (uuid.UUID, error) {
	if !sub.Address.Complete() {
		return uuid.Nil, ErrInvalidAddress
	}

	var cart models.Cart
	if err := s.db.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, ErrEmptyCart
		}
		return uuid.Nil, fmt.Errorf("load cart for user %s: %w", user.ID, err)
	}
	if len(cart.Items) == 0 {
		return uuid.Nil, ErrEmptyCart
	}

	deliveryCost, err := s.resolveDeliveryCost(user, cart.ID, sub)
	if err != nil {
		return uuid.Nil, err
	}

	order := models.Order{
		UserID:           user.ID,
		VoucherID:        sub.VoucherID,
		ProvisionalPrice: sub.ProvisionalPrice,
		DeliveryCost:     deliveryCost,
		TotalPrice:       sub.TotalPrice,
		PaymentMethod:    sub.PaymentMethod,
		AdditionalNote:   sub.AdditionalNote,
		ProvinceCity:     sub.Address.ProvinceCity,
		District:         sub.Address.District,
		CommuneWard:      sub.Address.CommuneWard,
		AddressDetail:    sub.Address.AddressDetail,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "COD"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range cart.Items {
			orderItem := models.OrderItem{
				OrderID:          order.ID,
				ProductID:        item.ProductID,
				Quantity:         item.Quantity,
				TotalPrice:       item.TotalPrice,
				DiscountedAmount: item.DiscountedAmount,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("create order item for product %s: %w", item.ProductID, err)
			}

			// Guarded decrement: zero rows affected means the remaining
			// stock would go negative, which aborts the whole transaction.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock for product %s: %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrInsufficientStock)
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("items_count", 0).Error; err != nil {
			return fmt.Errorf("reset cart count: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Printf("[Checkout] Order submission failed for user %s, cart %s: %v", user.ID, cart.ID, err)
		return uuid.Nil, err
	}

	log.Printf("[Checkout] Order %s committed for user %s", order.ID, user.ID)
	return order.ID, nil
}

// resolveDeliveryCost reuses the client-supplied cost when the address
// matches the user's stored default, and recomputes it via the location
// resolver and the fee service when it does not.
func (s *Service) resolveDeliveryCost(user models.User, cartID uuid.UUID, sub Submission) (int64, error) {
	if !AddressChanged(user, sub.Address) {
		return sub.DeliveryCost, nil
	}

	codes, err := s.resolver.Resolve(sub.Address.ProvinceCity, sub.Address.District, sub.Address.CommuneWard)
	if err != nil {
		log.Printf("[Checkout] Location resolution failed for user %s: %v", user.ID, err)
		return 0, fmt.Errorf("%w: %v", ErrShippingFeeUnavailable, err)
	}

	fee, err := s.fees.CalculateFee(codes.DistrictID, codes.WardCode, cartID)
	if err != nil {
		log.Printf("[Checkout] Fee quote failed for user %s, cart %s: %v", user.ID, cartID, err)
		return 0, fmt.Errorf("%w: %v", ErrShippingFeeUnavailable, err)
	}

	return fee, nil
}
