package ports

import "context"

// AuthNoteStore holds one ephemeral note per authentication attempt: the
// legacy login token stashed between the validate and commit phases.
// Consume returns the note and removes it in one step, so a note can never
// be read twice; a missing note yields ("", nil).
type AuthNoteStore interface {
	Set(ctx context.Context, sessionID, note string) error
	Consume(ctx context.Context, sessionID string) (string, error)
}
