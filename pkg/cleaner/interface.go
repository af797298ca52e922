package cleaner

import "context"

// Sweeper removes every stored variant for every namespace. There is
// no partial invalidation; the sweep is an all-or-nothing
// administrative operation.
type Sweeper interface {
	Sweep(ctx context.Context) error
}
