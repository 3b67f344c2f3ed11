package api

import "context"

// fetchPage requests one page: given the cursor ("" on the first call) it
// returns the page's items and the next cursor ("" when exhausted).
type fetchPage[T any] func(ctx context.Context, cursor string) ([]T, string, error)

// eachPage consumes one page. Returning stop=true ends pagination early;
// returning an error aborts the whole accumulation (no silent partial
// results).
type eachPage[T any] func(items []T) (stop bool, err error)

// paginate drives a cursor-based listing. Each page is handed to fn before
// the next request is issued, so callers writing pages through to the cache
// bound the unflushed window to one page: an interrupted run still leaves
// the cache partially warmed.
func paginate[T any](ctx context.Context, fetch fetchPage[T], fn eachPage[T]) error {
	var cursor string
	for {
		items, next, err := fetch(ctx, cursor)
		if err != nil {
			return err
		}

		stop, err := fn(items)
		if err != nil {
			return err
		}
		if stop || next == "" {
			return nil
		}
		cursor = next
	}
}
