package api

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// pagedFetch fakes a cursor listing over fixed pages.
func pagedFetch(pages map[string]struct {
	items []string
	next  string
}, calls *int) fetchPage[string] {
	return func(ctx context.Context, cursor string) ([]string, string, error) {
		*calls++
		page, ok := pages[cursor]
		if !ok {
			return nil, "", goerr.New("unknown cursor", goerr.V("cursor", cursor))
		}
		return page.items, page.next, nil
	}
}

func TestPaginateAccumulatesInPageOrder(t *testing.T) {
	pages := map[string]struct {
		items []string
		next  string
	}{
		"":   {items: []string{"a", "b"}, next: "p2"},
		"p2": {items: []string{"c"}, next: ""},
	}

	calls := 0
	var got []string
	err := paginate(context.Background(), pagedFetch(pages, &calls), func(items []string) (bool, error) {
		got = append(got, items...)
		return false, nil
	})
	gt.NoError(t, err).Required()
	gt.Array(t, got).Length(3).Required()
	gt.Value(t, got[0]).Equal("a")
	gt.Value(t, got[1]).Equal("b")
	gt.Value(t, got[2]).Equal("c")
	gt.Value(t, calls).Equal(2)
}

func TestPaginateEarlyExitSkipsRemainingPages(t *testing.T) {
	pages := map[string]struct {
		items []string
		next  string
	}{
		"":   {items: []string{"a", "b"}, next: "p2"},
		"p2": {items: []string{"c"}, next: ""},
	}

	calls := 0
	err := paginate(context.Background(), pagedFetch(pages, &calls), func(items []string) (bool, error) {
		return true, nil
	})
	gt.NoError(t, err).Required()
	gt.Value(t, calls).Equal(1)
}

func TestPaginateEmptyPageWithCursorContinues(t *testing.T) {
	pages := map[string]struct {
		items []string
		next  string
	}{
		"":   {items: nil, next: "p2"},
		"p2": {items: []string{"a"}, next: ""},
	}

	calls := 0
	var got []string
	err := paginate(context.Background(), pagedFetch(pages, &calls), func(items []string) (bool, error) {
		got = append(got, items...)
		return false, nil
	})
	gt.NoError(t, err).Required()
	gt.Array(t, got).Length(1)
	gt.Value(t, calls).Equal(2)
}

func TestPaginateConsumerErrorAborts(t *testing.T) {
	pages := map[string]struct {
		items []string
		next  string
	}{
		"":   {items: []string{"a"}, next: "p2"},
		"p2": {items: []string{"b"}, next: ""},
	}

	boom := goerr.New("consumer failed")
	calls := 0
	err := paginate(context.Background(), pagedFetch(pages, &calls), func(items []string) (bool, error) {
		return false, boom
	})
	gt.Error(t, err).Is(boom)
	gt.Value(t, calls).Equal(1)
}

func TestPaginateFetchErrorAborts(t *testing.T) {
	boom := goerr.New("fetch failed")
	fetch := func(ctx context.Context, cursor string) ([]string, string, error) {
		return nil, "", boom
	}

	err := paginate(context.Background(), fetch, func(items []string) (bool, error) {
		t.Error("consumer must not run on fetch failure")
		return false, nil
	})
	gt.Error(t, err).Is(boom)
}
