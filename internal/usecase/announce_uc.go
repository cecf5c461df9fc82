package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"

	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/domain/ports/adapter"
	"telegram-announce-relay/internal/domain/ports/repository"
	"telegram-announce-relay/internal/infra/logging"
	"telegram-announce-relay/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// CallbackNotifyAll is the callback data of the confirm button.
const CallbackNotifyAll = "notify_all"

// Transition names one edge of the announcement flow.
type Transition string

const (
	TransitionMenu    Transition = "menu"
	TransitionHelp    Transition = "help"
	TransitionAsk     Transition = "ask"
	TransitionPreview Transition = "preview"
	TransitionConfirm Transition = "confirm"
	TransitionIgnore  Transition = "ignore"
)

// nextState is the state a chat ends in after a transition.
// Transitions missing here leave the state as it was.
var nextState = map[Transition]model.ConversationState{
	TransitionMenu:    model.StateIdle,
	TransitionHelp:    model.StateIdle,
	TransitionAsk:     model.StateAwaitingAnnouncementText,
	TransitionPreview: model.StateIdle,
}

// Translator resolves catalog keys to user-facing text.
type Translator interface {
	T(key string, args ...interface{}) string
}

type AnnounceUseCase interface {
	// Handle runs the transition selected by the chat's state and ev.
	Handle(ctx context.Context, ev model.Event) error
	// Resolve reports which transition Handle would take.
	Resolve(state model.ConversationState, ev model.Event) Transition
	// RegisterCommands publishes the visible slash commands.
	RegisterCommands(ctx context.Context) error
}

var _ AnnounceUseCase = (*announceUC)(nil)

type announceUC struct {
	bot       adapter.MessengerAdapter
	drafts    repository.DraftRepository
	states    repository.StateRepository
	flowMsgs  repository.FlowMessageRepository
	broadcast BroadcastUseCase
	tr        Translator
	log       *zerolog.Logger

	commandRoutes  map[string]Transition
	menuRoutes     map[string]Transition
	callbackRoutes map[string]Transition
}

func NewAnnounceUseCase(
	bot adapter.MessengerAdapter,
	drafts repository.DraftRepository,
	states repository.StateRepository,
	flowMsgs repository.FlowMessageRepository,
	broadcast BroadcastUseCase,
	tr Translator,
	logger *zerolog.Logger,
) AnnounceUseCase {
	return &announceUC{
		bot:       bot,
		drafts:    drafts,
		states:    states,
		flowMsgs:  flowMsgs,
		broadcast: broadcast,
		tr:        tr,
		log:       logger,
		commandRoutes: map[string]Transition{
			"start":    TransitionMenu,
			"help":     TransitionHelp,
			"announce": TransitionAsk,
		},
		menuRoutes: map[string]Transition{
			tr.T("menu_create"): TransitionAsk,
			tr.T("menu_help"):   TransitionHelp,
		},
		callbackRoutes: map[string]Transition{
			CallbackNotifyAll: TransitionConfirm,
		},
	}
}

func (uc *announceUC) Resolve(state model.ConversationState, ev model.Event) Transition {
	switch ev.Kind {
	case model.EventCommand:
		if t, ok := uc.commandRoutes[ev.Command]; ok {
			return t
		}
	case model.EventCallback:
		if t, ok := uc.callbackRoutes[ev.CallbackData]; ok {
			return t
		}
	case model.EventText:
		text := strings.TrimSpace(ev.Text)
		if t, ok := uc.menuRoutes[text]; ok {
			return t
		}
		if state == model.StateAwaitingAnnouncementText && text != "" {
			return TransitionPreview
		}
	}
	return TransitionIgnore
}

func (uc *announceUC) Handle(ctx context.Context, ev model.Event) error {
	log := logging.With(ctx, uc.log)

	// Callbacks are acknowledged before anything else so the client drops
	// its spinner even if the transition fails.
	if ev.Kind == model.EventCallback {
		if err := uc.bot.AnswerCallback(ctx, ev.CallbackID); err != nil {
			log.Warn().Err(err).Msg("answer callback failed")
		}
	}

	state, err := uc.states.GetState(ctx, ev.ChatID)
	if err != nil {
		return fmt.Errorf("get state: %w", err)
	}
	t := uc.Resolve(state, ev)
	metrics.IncTransition(string(t))
	log.Debug().Str("state", state.String()).Str("transition", string(t)).Msg("flow transition")

	if next, ok := nextState[t]; ok && next != state {
		if err := uc.states.SetState(ctx, ev.ChatID, next); err != nil {
			return fmt.Errorf("set state: %w", err)
		}
	}

	switch t {
	case TransitionMenu:
		return uc.showMenu(ctx, ev)
	case TransitionHelp:
		return uc.showHelp(ctx, ev)
	case TransitionAsk:
		return uc.askText(ctx, ev)
	case TransitionPreview:
		return uc.preview(ctx, ev)
	case TransitionConfirm:
		return uc.confirm(ctx, ev)
	default:
		return nil
	}
}

func (uc *announceUC) RegisterCommands(ctx context.Context) error {
	return uc.bot.SetCommands(ctx, []adapter.BotCommand{
		{Command: "start", Description: uc.tr.T("cmd_start")},
		{Command: "help", Description: uc.tr.T("cmd_help")},
	})
}

func (uc *announceUC) showMenu(ctx context.Context, ev model.Event) error {
	return uc.showFlowMessage(ctx, adapter.SendMessageParams{
		ChatID: ev.ChatID,
		Text:   uc.tr.T("menu_prompt"),
		Keyboard: [][]string{
			{uc.tr.T("menu_create")},
			{uc.tr.T("menu_help")},
		},
	})
}

func (uc *announceUC) showHelp(ctx context.Context, ev model.Event) error {
	return uc.showFlowMessage(ctx, adapter.SendMessageParams{
		ChatID: ev.ChatID,
		Text:   uc.tr.T("help_text"),
	})
}

func (uc *announceUC) askText(ctx context.Context, ev model.Event) error {
	return uc.showFlowMessage(ctx, adapter.SendMessageParams{
		ChatID: ev.ChatID,
		Text:   uc.tr.T("ask_text"),
	})
}

func (uc *announceUC) preview(ctx context.Context, ev model.Event) error {
	text := strings.TrimSpace(ev.Text)
	if err := uc.drafts.Put(ctx, ev.ChatID, text); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return uc.showFlowMessage(ctx, adapter.SendMessageParams{
		ChatID:    ev.ChatID,
		Text:      uc.tr.T("preview", html.EscapeString(text)),
		ParseMode: adapter.ParseModeHTML,
		Buttons: [][]adapter.InlineButton{
			{{Text: uc.tr.T("notify_button"), Data: CallbackNotifyAll}},
		},
	})
}

func (uc *announceUC) confirm(ctx context.Context, ev model.Event) error {
	if ev.CallbackMessageID != 0 {
		_ = uc.tryDelete(ctx, ev.ChatID, ev.CallbackMessageID)
		if err := uc.flowMsgs.ForgetIf(ctx, ev.ChatID, ev.CallbackMessageID); err != nil {
			return fmt.Errorf("forget flow message: %w", err)
		}
	}

	text, ok, err := uc.drafts.Take(ctx, ev.ChatID)
	if err != nil {
		return fmt.Errorf("take draft: %w", err)
	}
	if !ok || text == "" {
		metrics.IncBroadcast("empty")
		return nil
	}
	return uc.broadcast.Broadcast(ctx, ev.ChatID, text)
}

// showFlowMessage replaces the chat's previous flow message with a new one.
func (uc *announceUC) showFlowMessage(ctx context.Context, params adapter.SendMessageParams) error {
	if prev, ok, err := uc.flowMsgs.GetLast(ctx, params.ChatID); err == nil && ok {
		_ = uc.tryDelete(ctx, params.ChatID, prev)
	}

	msgID, err := uc.bot.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("send flow message: %w", err)
	}
	if err := uc.flowMsgs.SetLast(ctx, params.ChatID, msgID); err != nil {
		return fmt.Errorf("remember flow message: %w", err)
	}
	return nil
}

// tryDelete reports whether the message is gone. Callers may drop the result:
// a message that is already deleted or too old to delete is not a problem.
func (uc *announceUC) tryDelete(ctx context.Context, chatID int64, messageID int) bool {
	if err := uc.bot.DeleteMessage(ctx, chatID, messageID); err != nil {
		metrics.IncDeleteFailure()
		logging.With(ctx, uc.log).Debug().Err(err).Int("message_id", messageID).Msg("flow message not deleted")
		return false
	}
	return true
}
