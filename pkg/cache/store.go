package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/m-mizutani/goerr/v2"

	"github.com/clacklabs/clack/pkg/domain/model"
	"github.com/clacklabs/clack/pkg/domain/types"
)

// schemaVersion is bumped when the row encoding changes. A store opened with
// a different version is wiped and rebuilt from remote fetches.
const schemaVersion = "1"

const (
	userPrefix   = "user:"
	convPrefix   = "conv:"
	msgPrefix    = "msg:"
	schemaKey    = "schema:version"
	keySeparator = ":"
)

// Store is the embedded write-through cache. The underlying pebble database
// is file-based and not safe for unsynchronized concurrent writers, so all
// access is serialized through a single mutex-guarded handle.
type Store struct {
	mu  sync.Mutex
	db  *pebble.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Test use only.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// DefaultDir returns the platform cache directory for the store
// (e.g. ~/.cache/clack on Linux), creating it if needed.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to determine cache directory for this platform")
	}
	dir := filepath.Join(base, "clack")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", goerr.Wrap(err, "failed to create cache directory", goerr.V("dir", dir))
	}
	return dir, nil
}

// New opens (or creates) the store at dir and applies the schema migration.
func New(dir string, opts ...Option) (*Store, error) {
	db, err := pebble.Open(filepath.Join(dir, "cache.db"), &pebble.Options{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open cache database", goerr.V("dir", dir))
	}

	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// migrate checks the stored schema version; a mismatch wipes the store and
// rewrites the version row. Cached data is always reconstructible from the
// remote API, so wipe-and-refill is the whole migration scheme.
func (s *Store) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, closer, err := s.db.Get([]byte(schemaKey))
	if err == nil {
		version := string(current)
		_ = closer.Close()
		if version == schemaVersion {
			return nil
		}
		for _, prefix := range []string{userPrefix, convPrefix, msgPrefix} {
			if err := s.deleteRange(prefix); err != nil {
				return goerr.Wrap(err, "failed to wipe cache during migration")
			}
		}
	} else if err != pebble.ErrNotFound {
		return goerr.Wrap(err, "failed to read cache schema version")
	}

	if err := s.db.Set([]byte(schemaKey), []byte(schemaVersion), pebble.Sync); err != nil {
		return goerr.Wrap(err, "failed to write cache schema version")
	}
	return nil
}

func userKey(ws types.WorkspaceID, id string) []byte {
	return []byte(userPrefix + ws.String() + keySeparator + id)
}

func convKey(ws types.WorkspaceID, id string) []byte {
	return []byte(convPrefix + ws.String() + keySeparator + id)
}

func msgKey(ws types.WorkspaceID, conversationID, ts string) []byte {
	return []byte(msgPrefix + ws.String() + keySeparator + conversationID + keySeparator + ts)
}

// keyUpperBound returns the smallest key greater than every key with the
// given prefix.
func keyUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func (s *Store) deleteRange(prefix string) error {
	start := []byte(prefix)
	return s.db.DeleteRange(start, keyUpperBound(start), pebble.Sync)
}

// getRow loads and decodes a single row. Returns (false, nil) when absent.
func (s *Store) getRow(key []byte, out any) (bool, error) {
	value, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to read cache row", goerr.V("key", string(key)))
	}
	defer func() { _ = closer.Close() }()

	if err := json.Unmarshal(value, out); err != nil {
		return false, goerr.Wrap(err, "failed to decode cache row", goerr.V("key", string(key)))
	}
	return true, nil
}

// setRow encodes and writes a single row. Upsert semantics: the previous row
// under the same key is replaced in full, never field-merged.
func (s *Store) setRow(key []byte, row any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return goerr.Wrap(err, "failed to encode cache row", goerr.V("key", string(key)))
	}
	if err := s.db.Set(key, data, pebble.Sync); err != nil {
		return goerr.Wrap(err, "failed to write cache row", goerr.V("key", string(key)))
	}
	return nil
}

// eachRow decodes every row under prefix into a fresh T and yields it.
func eachRow[T any](s *Store, prefix []byte, fn func(*T) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to iterate cache", goerr.V("prefix", string(prefix)))
	}
	defer func() { _ = iter.Close() }()

	for iter.First(); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		var row T
		if err := json.Unmarshal(iter.Value(), &row); err != nil {
			return goerr.Wrap(err, "failed to decode cache row", goerr.V("key", string(iter.Key())))
		}
		if err := fn(&row); err != nil {
			return err
		}
	}
	return iter.Error()
}

// GetUser returns the cached user, or nil on a miss. Absent, soft-deleted and
// stale rows are all misses.
func (s *Store) GetUser(ws types.WorkspaceID, id string, opts ...ReadOption) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := applyReadOptions(UserTTL, opts)

	var row cachedUser
	found, err := s.getRow(userKey(ws, id), &row)
	if err != nil || !found {
		return nil, err
	}
	if row.DeletedAt != nil || !isFresh(row.CachedAt, s.now(), ttl) {
		return nil, nil
	}
	return row.toUser()
}

// GetUsers returns every cached user for the workspace, or nil on a miss.
// The whole set degrades to a miss if it is empty or any member is stale:
// a partially-fresh listing must not masquerade as a complete one.
func (s *Store) GetUsers(ws types.WorkspaceID, opts ...ReadOption) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := applyReadOptions(UserTTL, opts)
	now := s.now()

	var users []*model.User
	allFresh := true
	prefix := []byte(userPrefix + ws.String() + keySeparator)
	err := eachRow(s, prefix, func(row *cachedUser) error {
		if row.DeletedAt != nil {
			return nil
		}
		if !isFresh(row.CachedAt, now, ttl) {
			allFresh = false
			return nil
		}
		user, err := row.toUser()
		if err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !allFresh || len(users) == 0 {
		return nil, nil
	}
	return users, nil
}

// PutUser upserts one user row with cached_at set to now.
func (s *Store) PutUser(ws types.WorkspaceID, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putUserLocked(ws, user)
}

// PutUsers upserts a batch of user rows. Each row is independently
// committed; a crash loses at most the in-flight row.
func (s *Store) PutUsers(ws types.WorkspaceID, users []*model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range users {
		if err := s.putUserLocked(ws, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) putUserLocked(ws types.WorkspaceID, user *model.User) error {
	row, err := newCachedUser(ws.String(), user, s.now())
	if err != nil {
		return err
	}
	return s.setRow(userKey(ws, user.ID), row)
}

// GetConversation returns the cached conversation, or nil on a miss.
func (s *Store) GetConversation(ws types.WorkspaceID, id string, opts ...ReadOption) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := applyReadOptions(ConversationTTL, opts)

	var row cachedConversation
	found, err := s.getRow(convKey(ws, id), &row)
	if err != nil || !found {
		return nil, err
	}
	if row.DeletedAt != nil || !isFresh(row.CachedAt, s.now(), ttl) {
		return nil, nil
	}
	return row.toConversation()
}

// GetConversations returns every cached conversation for the workspace, or
// nil on a miss, with the same all-or-nothing freshness rule as GetUsers.
func (s *Store) GetConversations(ws types.WorkspaceID, opts ...ReadOption) ([]*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := applyReadOptions(ConversationTTL, opts)
	now := s.now()

	var convs []*model.Conversation
	allFresh := true
	prefix := []byte(convPrefix + ws.String() + keySeparator)
	err := eachRow(s, prefix, func(row *cachedConversation) error {
		if row.DeletedAt != nil {
			return nil
		}
		if !isFresh(row.CachedAt, now, ttl) {
			allFresh = false
			return nil
		}
		conv, err := row.toConversation()
		if err != nil {
			return err
		}
		convs = append(convs, conv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !allFresh || len(convs) == 0 {
		return nil, nil
	}
	return convs, nil
}

// PutConversation upserts one conversation row.
func (s *Store) PutConversation(ws types.WorkspaceID, conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putConversationLocked(ws, conv)
}

// PutConversations upserts a batch of conversation rows.
func (s *Store) PutConversations(ws types.WorkspaceID, convs []*model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range convs {
		if err := s.putConversationLocked(ws, conv); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) putConversationLocked(ws types.WorkspaceID, conv *model.Conversation) error {
	row, err := newCachedConversation(ws.String(), conv, s.now())
	if err != nil {
		return err
	}
	return s.setRow(convKey(ws, conv.ID), row)
}

// GetMessages returns every cached message for the conversation in timestamp
// order, or nil on a miss (empty, or any member stale).
func (s *Store) GetMessages(ws types.WorkspaceID, conversationID string, opts ...ReadOption) ([]*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := applyReadOptions(MessageTTL, opts)
	now := s.now()

	var msgs []*model.Message
	allFresh := true
	prefix := []byte(msgPrefix + ws.String() + keySeparator + conversationID + keySeparator)
	err := eachRow(s, prefix, func(row *cachedMessage) error {
		if row.DeletedAt != nil {
			return nil
		}
		if !isFresh(row.CachedAt, now, ttl) {
			allFresh = false
			return nil
		}
		msg, err := row.toMessage()
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !allFresh || len(msgs) == 0 {
		return nil, nil
	}
	return msgs, nil
}

// PutMessages upserts a batch of message rows for one conversation.
func (s *Store) PutMessages(ws types.WorkspaceID, conversationID string, msgs []*model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range msgs {
		row, err := newCachedMessage(ws.String(), conversationID, msg, s.now())
		if err != nil {
			return err
		}
		if err := s.setRow(msgKey(ws, conversationID, msg.TS), row); err != nil {
			return err
		}
	}
	return nil
}

// ClearWorkspace hard-deletes every row for the workspace across all tables.
func (s *Store) ClearWorkspace(ws types.WorkspaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, prefix := range []string{
		msgPrefix + ws.String() + keySeparator,
		convPrefix + ws.String() + keySeparator,
		userPrefix + ws.String() + keySeparator,
	} {
		if err := s.deleteRange(prefix); err != nil {
			return goerr.Wrap(err, "failed to clear workspace cache", goerr.V("workspace", ws))
		}
	}
	return nil
}

// ClearAll hard-deletes every row across all workspaces.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, prefix := range []string{msgPrefix, convPrefix, userPrefix} {
		if err := s.deleteRange(prefix); err != nil {
			return goerr.Wrap(err, "failed to clear cache")
		}
	}
	return nil
}
