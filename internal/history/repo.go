package history

import "context"

// Repo defines persistence operations for analysis history.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, error)
	Clear(ctx context.Context) (int, error)
}
