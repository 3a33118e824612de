/*
Package errs provides custom error types and application-level error code constants.

Codes identify why a request was refused. Codes raised while handling socket events are
only logged, since the event protocol has no error frame; HTTP handlers render them
through the resp package.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that a required field is missing or empty.
	ErrInvalidParams = 1001

	// ErrInvalidJSONFormat indicates that a payload is not valid JSON for the expected shape.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after a valid JSON payload.
	ErrExtraContentInBody = 1004

	// ErrUnknownEvent indicates an event name outside the protocol.
	ErrUnknownEvent = 1008

	// ErrUpgradeRequired indicates a plain HTTP request on the WebSocket endpoint.
	ErrUpgradeRequired = 1009
)

// 2xxx: Room and Message Errors
const (
	// ErrEmptyText indicates a message event whose text is empty.
	ErrEmptyText = 2201
)

// 3xxx: Identity and Session Errors
const (
	// ErrSenderNotJoined indicates that the sending connection has not completed join.
	ErrSenderNotJoined = 3001

	// ErrTargetNotFound indicates a private message addressed to a connection with no registered user.
	ErrTargetNotFound = 3002

	// ErrConnectionUnknown indicates an event from a connection the server does not track.
	ErrConnectionUnknown = 3003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
