package errors

import "net/http"

// Wire messages for the fixed error table. The trivia frontend matches on
// these strings, so they must not drift.
const (
	MessageBadRequest       = "Bad request"
	MessageNotFound         = "Resource not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageUnprocessable    = "Unprocessable"
	MessageInternal         = "Internal Server Error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusInternalServerError: MessageInternal,
}

// MessageFor returns the canonical message for a mapped status code. Codes
// outside the table fall back to the internal error message.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return MessageInternal
}
