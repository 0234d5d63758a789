package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultShippingTimeout = 10 * time.Second

// ShippingService quotes delivery fees from the external shipping provider.
// The provider is a black box: it takes district/ward codes plus the cart
// identifier and returns a computed fee, or fails.
type ShippingService struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewShippingService constructs a ShippingService. A zero timeout falls back
// to the default so a hung provider cannot stall a checkout indefinitely.
func NewShippingService(baseURL, token string, timeout time.Duration) *ShippingService {
	if timeout <= 0 {
		timeout = defaultShippingTimeout
	}
	return &ShippingService{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type shippingFeeRequest struct {
	ToDistrictID    int    `json:"to_district_id"`
	ToWardCode      string `json:"to_ward_code"`
	ClientOrderCode string `json:"client_order_code"`
}

type shippingFeeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Total int64 `json:"total"`
	} `json:"data"`
}

// CalculateFee asks the provider for the delivery fee to the given district
// and ward for the cart's contents.
func (s *ShippingService) CalculateFee(districtID int, wardCode string, cartID uuid.UUID) (int64, error) {
	payload := shippingFeeRequest{
		ToDistrictID:    districtID,
		ToWardCode:      wardCode,
		ClientOrderCode: cartID.String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal shipping fee payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/shipping-order/fee", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create shipping fee request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Token", s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute shipping fee request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read shipping fee response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("shipping provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var feeResp shippingFeeResponse
	if err := json.Unmarshal(respBody, &feeResp); err != nil {
		return 0, fmt.Errorf("unmarshal shipping fee response: %w", err)
	}

	if feeResp.Code != 0 && feeResp.Code != http.StatusOK {
		return 0, fmt.Errorf("shipping provider rejected request: %s", feeResp.Message)
	}

	return feeResp.Data.Total, nil
}
