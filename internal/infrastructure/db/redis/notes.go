package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const noteTTL = 5 * time.Minute

// NoteStore holds per-session auth notes in Redis.
// Key format: authnote:<session_id>
//
// A note lives for at most noteTTL and is removed atomically on first read,
// so it can never outlive one authentication attempt.
type NoteStore struct {
	client *redis.Client
}

// NewNoteStore creates a NoteStore wrapping the given Redis client.
func NewNoteStore(client *redis.Client) *NoteStore {
	return &NoteStore{client: client}
}

// Set stashes the note for this session, replacing any previous one.
func (n *NoteStore) Set(ctx context.Context, sessionID, note string) error {
	if err := n.client.Set(ctx, n.key(sessionID), note, noteTTL).Err(); err != nil {
		return fmt.Errorf("set auth note: %w", err)
	}
	return nil
}

// Consume returns the note and deletes it in one round trip. A missing or
// expired note yields "".
func (n *NoteStore) Consume(ctx context.Context, sessionID string) (string, error) {
	note, err := n.client.GetDel(ctx, n.key(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("consume auth note: %w", err)
	}
	return note, nil
}

func (n *NoteStore) key(sessionID string) string {
	return fmt.Sprintf("authnote:%s", sessionID)
}
