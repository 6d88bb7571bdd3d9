// Package memory provides in-process infrastructure adapters for single-node
// deployments and tests.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const noteTTL = 5 * time.Minute

// NoteStore holds per-session auth notes in process memory, backed by
// go-cache for TTL handling. Suitable when the gateway runs as a single
// instance; use the Redis store otherwise.
type NoteStore struct {
	c *gocache.Cache
}

func NewNoteStore() *NoteStore {
	return &NoteStore{c: gocache.New(noteTTL, time.Minute)}
}

// Set stashes the note for this session, replacing any previous one.
func (n *NoteStore) Set(_ context.Context, sessionID, note string) error {
	n.c.Set(sessionID, note, noteTTL)
	return nil
}

// Consume returns the note and deletes it. A missing or expired note
// yields "".
func (n *NoteStore) Consume(_ context.Context, sessionID string) (string, error) {
	v, ok := n.c.Get(sessionID)
	if !ok {
		return "", nil
	}
	n.c.Delete(sessionID)
	note, _ := v.(string)
	return note, nil
}
