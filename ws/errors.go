package ws

import "errors"

var (
	// ErrDecode means an inbound payload is not a valid message draft.
	ErrDecode = errors.New("malformed message payload")
	// ErrAdmission means the upgrade request carries no usable identity.
	ErrAdmission = errors.New("connection admission refused")
	// ErrPersist means the message could not be stored; nothing is forwarded.
	ErrPersist = errors.New("message could not be persisted")
	// ErrChannelClosed is returned by Send on a channel that is no longer open.
	ErrChannelClosed = errors.New("channel closed")
)
