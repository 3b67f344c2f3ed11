package api_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
)

func TestListMessagesCacheHit(t *testing.T) {
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.history", func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached history must not hit the remote API")
		w.WriteHeader(http.StatusInternalServerError)
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	ws := types.WorkspaceID("T0001")
	gt.NoError(t, store.PutMessages(ws, "C001", []*model.Message{
		{TS: "1700000001.000100", Text: "first"},
		{TS: "1700000002.000100", Text: "second"},
		{TS: "1700000003.000100", Text: "third"},
	})).Required()

	// History order is newest-first, so the limit window keeps the newest
	// messages even though the store iterates oldest-first.
	msgs, err := client.ListMessages(ctx, "C001", 2, "", "")
	gt.NoError(t, err).Required()
	gt.Array(t, msgs).Length(2).Required()
	gt.Value(t, msgs[0].Text).Equal("third")
	gt.Value(t, msgs[1].Text).Equal("second")
}

func TestListMessagesWarmCacheMatchesRemote(t *testing.T) {
	historyCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.history", func(w http.ResponseWriter, r *http.Request) {
		historyCalls++
		msgs := []any{
			map[string]any{"ts": "1700000003.000100", "text": "third"},
			map[string]any{"ts": "1700000002.000100", "text": "second"},
			map[string]any{"ts": "1700000001.000100", "text": "first"},
		}
		if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n < len(msgs) {
			msgs = msgs[:n]
		}
		writeJSON(t, w, map[string]any{"ok": true, "messages": msgs})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	cold, err := client.ListMessages(ctx, "C001", 2, "", "")
	gt.NoError(t, err).Required()
	gt.Value(t, historyCalls).Equal(1)

	warm, err := client.ListMessages(ctx, "C001", 2, "", "")
	gt.NoError(t, err).Required()
	gt.Value(t, historyCalls).Equal(1)

	// The warm cache must return the same window in the same order as the
	// remote call it replaces.
	gt.Array(t, cold).Length(2).Required()
	gt.Array(t, warm).Length(2).Required()
	gt.Value(t, warm[0].Text).Equal(cold[0].Text)
	gt.Value(t, warm[1].Text).Equal(cold[1].Text)
	gt.Value(t, warm[0].Text).Equal("third")
	gt.Value(t, warm[1].Text).Equal("second")
}

func TestListMessagesMissGoesRemoteAndCaches(t *testing.T) {
	historyCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.history", func(w http.ResponseWriter, r *http.Request) {
		historyCalls++
		gt.Value(t, r.URL.Query().Get("channel")).Equal("C001")
		writeJSON(t, w, map[string]any{
			"ok": true,
			"messages": []any{
				map[string]any{"ts": "1700000001.000100", "text": "hello", "user": "U001"},
			},
		})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	msgs, err := client.ListMessages(ctx, "C001", 50, "", "")
	gt.NoError(t, err).Required()
	gt.Array(t, msgs).Length(1)
	gt.Value(t, historyCalls).Equal(1)

	// Second read is served from the warmed cache.
	_, err = client.ListMessages(ctx, "C001", 50, "", "")
	gt.NoError(t, err).Required()
	gt.Value(t, historyCalls).Equal(1)
}

func TestListMessagesBoundedAlwaysGoesRemote(t *testing.T) {
	historyCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.history", func(w http.ResponseWriter, r *http.Request) {
		historyCalls++
		gt.Value(t, r.URL.Query().Get("latest")).Equal("1700000009.000000")
		writeJSON(t, w, map[string]any{"ok": true, "messages": []any{}})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	gt.NoError(t, store.PutMessages(types.WorkspaceID("T0001"), "C001", []*model.Message{
		{TS: "1700000001.000100", Text: "cached"},
	})).Required()

	_, err = client.ListMessages(ctx, "C001", 50, "1700000009.000000", "")
	gt.NoError(t, err).Required()
	gt.Value(t, historyCalls).Equal(1)
}

func TestListMessagesRefreshBypassesCache(t *testing.T) {
	historyCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.history", func(w http.ResponseWriter, r *http.Request) {
		historyCalls++
		writeJSON(t, w, map[string]any{
			"ok":       true,
			"messages": []any{map[string]any{"ts": "1700000001.000100", "text": "remote"}},
		})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store), api.WithRefresh(true))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	ws := types.WorkspaceID("T0001")
	gt.NoError(t, store.PutMessages(ws, "C001", []*model.Message{
		{TS: "1700000001.000100", Text: "cached"},
	})).Required()

	msgs, err := client.ListMessages(ctx, "C001", 50, "", "")
	gt.NoError(t, err).Required()
	gt.Array(t, msgs).Length(1).Required()
	gt.Value(t, msgs[0].Text).Equal("remote")
	gt.Value(t, historyCalls).Equal(1)

	// The refreshed record replaced the cached one.
	cached, err := store.GetMessages(ws, "C001")
	gt.NoError(t, err).Required()
	gt.Array(t, cached).Length(1).Required()
	gt.Value(t, cached[0].Text).Equal("remote")
}

func TestGetThreadFromCache(t *testing.T) {
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.replies", func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached thread must not hit the remote API")
		w.WriteHeader(http.StatusInternalServerError)
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	gt.NoError(t, store.PutMessages(types.WorkspaceID("T0001"), "C001", []*model.Message{
		{TS: "1700000001.000100", Text: "root"},
		{TS: "1700000002.000100", Text: "reply", ThreadTS: "1700000001.000100"},
		{TS: "1700000003.000100", Text: "unrelated"},
	})).Required()

	thread, err := client.GetThread(ctx, "C001", "1700000001.000100")
	gt.NoError(t, err).Required()
	gt.Array(t, thread).Length(2).Required()
	gt.Value(t, thread[0].Text).Equal("root")
	gt.Value(t, thread[1].Text).Equal("reply")
}

func TestGetThreadMissGoesRemote(t *testing.T) {
	repliesCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/conversations.replies", func(w http.ResponseWriter, r *http.Request) {
		repliesCalls++
		gt.Value(t, r.URL.Query().Get("ts")).Equal("1700000001.000100")
		writeJSON(t, w, map[string]any{
			"ok": true,
			"messages": []any{
				map[string]any{"ts": "1700000001.000100", "text": "root"},
				map[string]any{"ts": "1700000002.000100", "text": "reply", "thread_ts": "1700000001.000100"},
			},
		})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	thread, err := client.GetThread(ctx, "C001", "1700000001.000100")
	gt.NoError(t, err).Required()
	gt.Array(t, thread).Length(2)
	gt.Value(t, repliesCalls).Equal(1)

	// The fetched thread warms the cache for the next read.
	thread, err = client.GetThread(ctx, "C001", "1700000001.000100")
	gt.NoError(t, err).Required()
	gt.Array(t, thread).Length(2)
	gt.Value(t, repliesCalls).Equal(1)
}

func TestPostMessage(t *testing.T) {
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("channel")).Equal("C001")
		gt.Value(t, r.URL.Query().Get("text")).Equal("hello world")
		gt.Value(t, r.URL.Query().Get("thread_ts")).Equal("1700000001.000100")
		writeJSON(t, w, map[string]any{"ok": true, "channel": "C001", "ts": "1700000005.000100"})
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	ts, err := client.PostMessage(ctx, "C001", "hello world", "1700000001.000100")
	gt.NoError(t, err).Required()
	gt.Value(t, ts).Equal("1700000005.000100")
}
