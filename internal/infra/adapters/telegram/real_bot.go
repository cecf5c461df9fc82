package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-announce-relay/internal/config"
	"telegram-announce-relay/internal/domain"
	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/domain/ports/adapter"
	"telegram-announce-relay/internal/infra/logging"
	"telegram-announce-relay/internal/infra/metrics"
	"telegram-announce-relay/internal/infra/worker"
)

var _ adapter.MessengerAdapter = (*RealTelegramBotAdapter)(nil)

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// EventHandler receives every translated update.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev model.Event) error
}

// RealTelegramBotAdapter polls Telegram and implements the outbound messenger port.
type RealTelegramBotAdapter struct {
	bot botAPI
	cfg *config.BotConfig
	log *zerolog.Logger

	conflictBackoff time.Duration
	errorBackoff    time.Duration
}

// NewRealTelegramBotAdapter authenticates against Telegram (getMe) and
// fails when the token is rejected.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	client := &http.Client{Timeout: cfg.RequestTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	logger.Info().Str("bot", bot.Self.UserName).Msg("authorized on telegram")
	return newAdapter(bot, cfg, logger), nil
}

func newAdapter(bot botAPI, cfg *config.BotConfig, logger *zerolog.Logger) *RealTelegramBotAdapter {
	return &RealTelegramBotAdapter{
		bot:             bot,
		cfg:             cfg,
		log:             logger,
		conflictBackoff: 5 * time.Second,
		errorBackoff:    3 * time.Second,
	}
}

// StartPolling drops any webhook, then long-polls until ctx is canceled.
// Updates are handed to handler through a pool sharded by chat id, so one
// chat's updates are always processed in arrival order.
//
// A 409 Conflict means another instance holds the update stream. It is
// retried once; a second consecutive conflict returns ErrTransportConflict.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context, handler EventHandler) error {
	if handler == nil {
		return domain.ErrNilHandler
	}
	if _, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	pool := worker.NewPool(r.cfg.Workers, r.log)
	pool.Start(ctx)
	defer pool.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.cfg.PollTimeout

	conflicts := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := r.bot.GetUpdates(u)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if isConflict(err) {
				metrics.IncConflict()
				conflicts++
				if conflicts > 1 {
					return fmt.Errorf("%w: %v", domain.ErrTransportConflict, err)
				}
				r.log.Warn().Err(err).Msg("update stream taken by another instance, retrying once")
				if !sleepCtx(ctx, r.conflictBackoff) {
					return nil
				}
				continue
			}
			r.log.Warn().Err(err).Msg("get updates failed, retrying")
			if !sleepCtx(ctx, r.errorBackoff) {
				return nil
			}
			continue
		}
		conflicts = 0

		for _, up := range updates {
			if up.UpdateID >= u.Offset {
				u.Offset = up.UpdateID + 1
			}
			ev, ok := toEvent(up)
			if !ok {
				continue
			}
			metrics.IncUpdate(string(ev.Kind))
			if err := pool.Submit(ctx, ev.ChatID, r.task(handler, up.UpdateID, ev)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				r.log.Error().Err(err).Int("update_id", up.UpdateID).Msg("dispatch update")
			}
		}
	}
}

func (r *RealTelegramBotAdapter) task(handler EventHandler, updateID int, ev model.Event) worker.Task {
	return func(ctx context.Context) error {
		ctx = logging.WithChatID(logging.WithTraceID(ctx, uuid.NewString()), ev.ChatID)
		if err := handler.HandleEvent(ctx, ev); err != nil {
			return fmt.Errorf("update %d: %w", updateID, err)
		}
		return nil
	}
}

// SendMessage sends params and returns the new message id.
// - Buttons render as an inline keyboard (URL buttons when URL is set)
// - Keyboard renders as a resized reply keyboard
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	msg.ParseMode = params.ParseMode
	switch {
	case len(params.Buttons) > 0:
		msg.ReplyMarkup = inlineKeyboard(params.Buttons)
	case len(params.Keyboard) > 0:
		msg.ReplyMarkup = replyKeyboard(params.Keyboard)
	}

	sent, err := r.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	if sent.MessageID == 0 {
		return 0, domain.ErrNoMessage
	}
	return sent.MessageID, nil
}

func (r *RealTelegramBotAdapter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (r *RealTelegramBotAdapter) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (r *RealTelegramBotAdapter) SetCommands(ctx context.Context, commands []adapter.BotCommand) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmds := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		cmds = append(cmds, tgbotapi.BotCommand{Command: c.Command, Description: c.Description})
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(cmds...))
	return err
}

func inlineKeyboard(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				r = append(r, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				r = append(r, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				r = append(r, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	kbRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			r = append(r, tgbotapi.NewKeyboardButton(label))
		}
		kbRows = append(kbRows, r)
	}
	kb := tgbotapi.NewReplyKeyboard(kbRows...)
	kb.ResizeKeyboard = true
	return kb
}

func isConflict(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusConflict
	}
	var apiVal tgbotapi.Error
	if errors.As(err, &apiVal) {
		return apiVal.Code == http.StatusConflict
	}
	return strings.Contains(err.Error(), "Conflict")
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
