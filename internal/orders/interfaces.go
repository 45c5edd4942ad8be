package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
)

type stateStore interface {
	View(ctx context.Context, fn func(st *store.State) error) error
	WithTx(ctx context.Context, fn func(tx *store.State) error) error
	Now() time.Time
}

// Recorder receives successful order placements.
type Recorder interface {
	OrderCreated(units map[string]int)
}
