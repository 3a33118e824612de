package errs

import "net/http"

// errorMap holds the template CustomError for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:      {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrInvalidJSONFormat:  {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody: {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrUnknownEvent:       {Code: ErrUnknownEvent, Message: "Unknown event %q."},
	ErrUpgradeRequired:    {Code: ErrUpgradeRequired, Message: "WebSocket upgrade required.", Status: http.StatusUpgradeRequired},

	// 2xxx: Room and Message Errors
	ErrEmptyText: {Code: ErrEmptyText, Message: "Message text is empty."},

	// 3xxx: Identity and Session Errors
	ErrSenderNotJoined:   {Code: ErrSenderNotJoined, Message: "Sender has not joined."},
	ErrTargetNotFound:    {Code: ErrTargetNotFound, Message: "Recipient is not online."},
	ErrConnectionUnknown: {Code: ErrConnectionUnknown, Message: "Connection is not tracked."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
