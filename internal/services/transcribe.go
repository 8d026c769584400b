package services

import "context"

// TranscriptionProvider converts a normalized audio file into plain text.
// Exactly one implementation is bound at pipeline construction; nothing deeper
// in the call stack branches on provider identity.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
