package ai

import "context"

// Gateway owns the chat sessions held with the external model.
//
// Handles are opaque strings. A handle that the gateway no longer knows
// (discarded, expired, issued by another process) is treated as absent.
type Gateway interface {
	// EnsureSession returns handle if it is still live, otherwise it starts a
	// new chat configured with SystemPolicy and Tools and returns its handle.
	EnsureSession(ctx context.Context, handle string) (string, error)
	// SubmitTurn sends one user message. On any failure the handle is
	// discarded and a *TransientError is returned.
	SubmitTurn(ctx context.Context, handle, text string) (Action, error)
	// Discard drops the chat behind handle. Unknown handles are ignored.
	Discard(handle string)
}
