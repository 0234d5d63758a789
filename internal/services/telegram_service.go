package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService notifies the shop admin chat about committed orders.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService. Empty credentials turn
// the service into a no-op so local setups work without a bot.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// OrderNotification contains order data for the admin notification.
type OrderNotification struct {
	OrderID       string
	CustomerName  string
	CustomerPhone string
	Address       string
	ItemCount     int
	DeliveryCost  int64
	TotalPrice    int64
	PaymentMethod string
}

// FormatVND renders an integer VND amount with thousand separators.
func FormatVND(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(".")
		}
		result.WriteRune(digit)
	}

	return result.String() + " ₫"
}

// NotifyNewOrder sends a new-order notification to the admin chat.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>🛒 ĐƠN HÀNG MỚI</b>
<b>📋 Mã đơn:</b> %s
<b>👤 Khách hàng:</b> %s
<b>📞 Điện thoại:</b> %s
<b>📍 Địa chỉ:</b> %s
<b>📦 Số sản phẩm:</b> %d
<b>🚚 Phí giao hàng:</b> %s
<b>💰 Tổng cộng:</b> %s
<b>💳 Thanh toán:</b> %s`,
		order.OrderID,
		order.CustomerName,
		order.CustomerPhone,
		order.Address,
		order.ItemCount,
		FormatVND(order.DeliveryCost),
		FormatVND(order.TotalPrice),
		order.PaymentMethod,
	)

	return s.SendMessage(s.adminChatID, strings.TrimSpace(message))
}
