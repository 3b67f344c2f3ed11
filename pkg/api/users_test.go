package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/clacklabs/clack/pkg/api"
	"github.com/clacklabs/clack/pkg/cache"
	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
)

func userPayload(id, name string, deleted bool) map[string]any {
	return map[string]any{
		"id":      id,
		"name":    name,
		"deleted": deleted,
		"profile": map[string]any{"display_name": name},
	}
}

func TestListUsersWritesEveryPageThrough(t *testing.T) {
	listCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.list", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		switch r.URL.Query().Get("cursor") {
		case "":
			writeJSON(t, w, map[string]any{
				"ok": true,
				"members": []any{
					userPayload("U001", "alice", false),
					userPayload("U002", "ghost", true),
				},
				"response_metadata": map[string]any{"next_cursor": "p2"},
			})
		case "p2":
			writeJSON(t, w, map[string]any{
				"ok":      true,
				"members": []any{userPayload("U003", "bob", false)},
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	users, err := client.ListUsers(ctx, false)
	gt.NoError(t, err).Required()
	gt.Array(t, users).Length(2).Required()
	gt.Value(t, users[0].ID).Equal("U001")
	gt.Value(t, users[1].ID).Equal("U003")
	gt.Value(t, listCalls).Equal(2)

	// Deactivated members are filtered from the result but still cached.
	cached, err := store.GetUsers(types.WorkspaceID("T0001"))
	gt.NoError(t, err).Required()
	gt.Array(t, cached).Length(3)

	all, err := client.ListUsers(ctx, true)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(3)
}

func TestGetUserCacheFirst(t *testing.T) {
	infoCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		infoCalls++
		gt.Value(t, r.URL.Query().Get("user")).Equal("U001")
		writeJSON(t, w, map[string]any{"ok": true, "user": userPayload("U001", "alice", false)})
	})

	client := newTestClient(t, mux, api.WithStore(newStore(t)))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	first, err := client.GetUser(ctx, "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, first.Name).Equal("alice")
	gt.Value(t, infoCalls).Equal(1)

	// Second read is served from the cache.
	second, err := client.GetUser(ctx, "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, second.Name).Equal("alice")
	gt.Value(t, infoCalls).Equal(1)
}

func TestGetUserStaleGoesRemote(t *testing.T) {
	infoCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		infoCalls++
		writeJSON(t, w, map[string]any{"ok": true, "user": userPayload("U001", "alice-current", false)})
	})

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store := newStore(t, cache.WithClock(func() time.Time { return now }))
	client := newTestClient(t, mux, api.WithStore(store))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	gt.NoError(t, store.PutUser(types.WorkspaceID("T0001"), &model.User{ID: "U001", Name: "alice-cached"})).Required()
	now = now.Add(cache.UserTTL)

	got, err := client.GetUser(ctx, "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, got.Name).Equal("alice-current")
	gt.Value(t, infoCalls).Equal(1)
}

func TestGetUserRefreshBypassesCacheAndRewrites(t *testing.T) {
	infoCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		infoCalls++
		writeJSON(t, w, map[string]any{"ok": true, "user": userPayload("U001", "alice-current", false)})
	})

	store := newStore(t)
	client := newTestClient(t, mux, api.WithStore(store), api.WithRefresh(true))
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	ws := types.WorkspaceID("T0001")
	gt.NoError(t, store.PutUser(ws, &model.User{ID: "U001", Name: "alice-cached"})).Required()

	got, err := client.GetUser(ctx, "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, got.Name).Equal("alice-current")
	gt.Value(t, infoCalls).Equal(1)

	// Refresh still writes the fetched record through.
	cached, err := store.GetUser(ws, "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, cached).NotNil().Required()
	gt.Value(t, cached.Name).Equal("alice-current")
}

func TestGetUserWithoutStoreGoesRemote(t *testing.T) {
	infoCalls := 0
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		infoCalls++
		writeJSON(t, w, map[string]any{"ok": true, "user": userPayload("U001", "alice", false)})
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	_, err := client.InitWorkspace(ctx)
	gt.NoError(t, err).Required()

	for i := 0; i < 2; i++ {
		_, err := client.GetUser(ctx, "U001")
		gt.NoError(t, err).Required()
	}
	gt.Value(t, infoCalls).Equal(2)
}

func TestGetProfile(t *testing.T) {
	mux := http.NewServeMux()
	serveAuthTest(t, mux)
	mux.HandleFunc("/users.profile.get", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("user")).Equal("U001")
		writeJSON(t, w, map[string]any{
			"ok":      true,
			"profile": map[string]any{"display_name": "alice", "email": "alice@example.com"},
		})
	})

	client := newTestClient(t, mux)
	profile, err := client.GetProfile(context.Background(), "U001")
	gt.NoError(t, err).Required()
	gt.Value(t, profile.Email).Equal("alice@example.com")
}
