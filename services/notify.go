package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/therohitbiruli/dinex-menu/models"
)

// TelegramNotifier pings the staff group chat when an order lands. It
// is optional: with no token configured NewTelegramNotifier returns
// nil, and a nil notifier ignores every call.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier() *TelegramNotifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chat := os.Getenv("TELEGRAM_STAFF_CHAT_ID")
	if token == "" || chat == "" {
		return nil
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		log.Printf("invalid TELEGRAM_STAFF_CHAT_ID, notifier disabled: %v", err)
		return nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("telegram notifier disabled: %v", err)
		return nil
	}
	return &TelegramNotifier{api: api, chatID: chatID}
}

func (n *TelegramNotifier) NotifyNewOrder(order *models.Order) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("🍽 New order for table %s: %d item(s), total %.2f",
		order.Table_id, len(order.Items), OrderTotal(order.Items))
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("telegram notification failed: %v", err)
	}
}
