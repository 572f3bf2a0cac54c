package handler

import (
	"net/http"

	"github.com/mcoot/bankit-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeRoomNotFound        = apierr.CodeRoomNotFound
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeNicknameTaken       = apierr.CodeNicknameTaken
	CodeNotInRoom           = apierr.CodeNotInRoom
	CodeNotHost             = apierr.CodeNotHost
	CodeNotYourTurn         = apierr.CodeNotYourTurn
	CodeAlreadyBanked       = apierr.CodeAlreadyBanked
	CodeGameAlreadyStarted  = apierr.CodeGameAlreadyStarted
	CodeGameNotStarted      = apierr.CodeGameNotStarted
	CodeGameFinished        = apierr.CodeGameFinished
	CodeInsufficientPlayers = apierr.CodeInsufficientPlayers
	CodeInvalidRounds       = apierr.CodeInvalidRounds
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
