package usecase

import (
	"context"
	"fmt"
	"strings"

	"telegram-announce-relay/internal/domain/ports/adapter"
	"telegram-announce-relay/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// ComposeBroadcast appends the mention list to text after a blank line.
func ComposeBroadcast(text string, mentions []string) string {
	return text + "\n\n" + strings.Join(mentions, " ")
}

type BroadcastUseCase interface {
	// Broadcast sends text with the mention list as a standalone message.
	Broadcast(ctx context.Context, chatID int64, text string) error
}

var _ BroadcastUseCase = (*broadcastUC)(nil)

type broadcastUC struct {
	bot      adapter.MessengerAdapter
	mentions []string
	log      *zerolog.Logger
}

func NewBroadcastUseCase(bot adapter.MessengerAdapter, mentions []string, logger *zerolog.Logger) BroadcastUseCase {
	return &broadcastUC{
		bot:      bot,
		mentions: append([]string(nil), mentions...),
		log:      logger,
	}
}

func (uc *broadcastUC) Broadcast(ctx context.Context, chatID int64, text string) error {
	msgID, err := uc.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID: chatID,
		Text:   ComposeBroadcast(text, uc.mentions),
	})
	if err != nil {
		metrics.IncBroadcast("failed")
		return fmt.Errorf("send broadcast: %w", err)
	}
	metrics.IncBroadcast("sent")
	uc.log.Info().Int64("chat_id", chatID).Int("message_id", msgID).Int("mentions", len(uc.mentions)).Msg("announcement broadcast")
	return nil
}
