package chat

import "errors"

var (
	// ErrUnreachable covers transport failures and non-2xx responses.
	ErrUnreachable = errors.New("chat: server unreachable")

	// ErrMalformedReply indicates a response body without a usable reply.
	ErrMalformedReply = errors.New("chat: malformed reply")

	// ErrEmptyMessage is returned by Ask for blank input.
	ErrEmptyMessage = errors.New("chat: empty message")
)
