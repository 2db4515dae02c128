package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ayush-assistant/herbcatalog/internal/chat"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// ChatService answers outgoing chat messages that name a catalog herb.
type ChatService struct {
	catalog *CatalogService
	logger  *slog.Logger
}

// NewChatService constructs a ChatService that looks herbs up in catalog.
func NewChatService(catalog *CatalogService, logger *slog.Logger) *ChatService {
	return &ChatService{catalog: catalog, logger: logger}
}

// Intercept looks for a herb named in message. A blank message, a miss, or a
// rendering failure all return Handled=false so the message goes through.
func (s *ChatService) Intercept(ctx context.Context, message string) domain.ChatReply {
	if strings.TrimSpace(message) == "" {
		return domain.ChatReply{}
	}

	herb, ok := s.catalog.Snapshot().Match(message)
	if !ok {
		return domain.ChatReply{}
	}

	text := chat.Reply(herb)
	html, err := chat.RenderHTML(text)
	if err != nil {
		s.logger.ErrorContext(ctx, "chat reply render failed", "herb_id", herb.ID, "error", err)
		return domain.ChatReply{}
	}

	return domain.ChatReply{Handled: true, HerbID: herb.ID, Text: text, HTML: html}
}
