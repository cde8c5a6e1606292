package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"attendance/domain"
)

type whatsappSink struct {
	meowClient *whatsmeow.Client
}

// NewWhatsappSink delivers guardian messages over WhatsApp.
func NewWhatsappSink(meow *whatsmeow.Client) domain.NotificationSink {
	return &whatsappSink{
		meowClient: meow,
	}
}

func (ws *whatsappSink) Send(ctx context.Context, contact, message string) (string, error) {
	jid := types.NewJID(normalizePhone(contact), types.DefaultUserServer)

	conversationMessage := &waE2E.Message{
		Conversation: &message,
	}

	_, err := ws.meowClient.SendMessage(ctx, jid, conversationMessage)
	if err != nil {
		return domain.DeliveryFailed, fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}

	return domain.DeliveryDelivered, nil
}

// normalizePhone rewrites a local 08xx number to the international form
// WhatsApp expects.
func normalizePhone(contact string) string {
	contact = strings.TrimSpace(contact)
	if strings.HasPrefix(contact, "0") {
		return fmt.Sprintf("%s%s", "62", contact[1:])
	}
	return strings.TrimPrefix(contact, "+")
}

type consoleSink struct{}

// NewConsoleSink logs messages instead of delivering them. Dev/test only.
func NewConsoleSink() domain.NotificationSink {
	return &consoleSink{}
}

func (cs *consoleSink) Send(ctx context.Context, contact, message string) (string, error) {
	fmt.Printf("notify %s: %s\n", contact, message)
	return domain.DeliveryDelivered, nil
}
