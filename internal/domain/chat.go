package domain

import "github.com/google/uuid"

// ChatReply is the outcome of intercepting an outgoing chat message.
// Handled is false when the message should continue to the assistant backend
// unchanged; Text and HTML are empty in that case.
type ChatReply struct {
	Handled bool
	HerbID  uuid.UUID
	Text    string
	HTML    string
}
