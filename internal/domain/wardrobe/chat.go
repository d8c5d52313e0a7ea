package wardrobe

import (
	"context"
	"strings"
)

// SendChat shows the user's message at once, then the assistant's reply or a fallback apology.
func (c *controller) SendChat(ctx context.Context, text string) {
	message := strings.TrimSpace(text)
	if message == "" {
		return
	}
	c.view.AppendChatMessage(message, SenderUser)

	reply, err := c.gateway.SendChatMessage(ctx, message)
	if err != nil {
		c.fail("chat", MsgChatFallback, err)
		return
	}
	c.view.AppendChatMessage(reply, SenderAssistant)
}
