package application

import (
	"context"

	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/infra/metrics"
)

// Handler processes one inbound event.
type Handler func(ctx context.Context, ev model.Event) error

// OperatorOnly runs next only for events sent by operator. Everything else,
// including events without a sender, is dropped without a reply.
func OperatorOnly(operator string, next Handler) Handler {
	return func(ctx context.Context, ev model.Event) error {
		if !ev.HasIdentity() || ev.Username != operator {
			metrics.IncUnauthorized()
			return nil
		}
		return next(ctx, ev)
	}
}
