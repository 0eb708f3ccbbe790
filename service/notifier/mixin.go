package notifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"dao/core"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/gofrs/uuid"
)

// MessageSender is implemented by *mixin.Client
type MessageSender interface {
	SendMessages(ctx context.Context, messages []*mixin.MessageRequest) error
}

// Mixin send every event as a plain text message to each recipient
func Mixin(client MessageSender, clientID string, recipients []string) core.EventNotifier {
	return &mixinNotifier{
		client:     client,
		clientID:   clientID,
		recipients: recipients,
	}
}

type mixinNotifier struct {
	client     MessageSender
	clientID   string
	recipients []string
}

func (n *mixinNotifier) Notify(ctx context.Context, events []*core.Event) error {
	var messages []*mixin.MessageRequest

	for _, e := range events {
		text := renderText(e)
		for _, recipient := range n.recipients {
			messages = append(messages, &mixin.MessageRequest{
				ConversationID: mixin.UniqueConversationID(n.clientID, recipient),
				RecipientID:    recipient,
				MessageID:      messageID(e, recipient),
				Category:       mixin.MessageCategoryPlainText,
				Data:           base64.StdEncoding.EncodeToString([]byte(text)),
			})
		}
	}

	if len(messages) == 0 {
		return nil
	}

	return n.client.SendMessages(ctx, messages)
}

// messageID is stable so a redelivered batch is deduplicated by mixin
func messageID(e *core.Event, recipient string) string {
	name := fmt.Sprintf("dao-event:%d:%s", e.ID, recipient)
	return uuid.NewV5(uuid.NamespaceOID, name).String()
}

func renderText(e *core.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Subject)
	if e.Actor != "" {
		fmt.Fprintf(&b, " by %s", e.Actor)
	}

	if data := e.Data.String(); data != "" && data != "{}" {
		fmt.Fprintf(&b, "\n%s", data)
	}

	return b.String()
}
