// File: internal/application/bot_facade.go
package application

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-announce-relay/internal/domain"
	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/infra/logging"
	"telegram-announce-relay/internal/usecase"
)

// BotFacade is the single entry point the transport calls for every update.
// Every flow operation is reached only through the operator gate.
type BotFacade struct {
	AnnounceUC usecase.AnnounceUseCase

	handle Handler
	log    *zerolog.Logger
}

func NewBotFacade(operator string, announceUC usecase.AnnounceUseCase, logger *zerolog.Logger) (*BotFacade, error) {
	if announceUC == nil {
		return nil, errors.New("announce usecase is nil")
	}
	if operator == "" {
		return nil, domain.ErrInvalidConfig
	}
	return &BotFacade{
		AnnounceUC: announceUC,
		handle:     OperatorOnly(operator, announceUC.Handle),
		log:        logger,
	}, nil
}

// HandleEvent gates and dispatches ev.
func (f *BotFacade) HandleEvent(ctx context.Context, ev model.Event) error {
	defer logging.TraceDuration(logging.With(ctx, f.log), "BotFacade.HandleEvent")()
	return f.handle(ctx, ev)
}
