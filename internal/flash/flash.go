// Package flash keeps one-shot notifications per session. A stored flash is
// returned by the next Pop for that session and then removed.
package flash

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

type Store interface {
	Put(ctx context.Context, sessionID string, f model.Flash) error
	// Pop returns nil, nil when nothing is pending.
	Pop(ctx context.Context, sessionID string) (*model.Flash, error)
}
