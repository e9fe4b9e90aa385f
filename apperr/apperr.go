package apperr

import (
	"errors"
	"log"
	"net/http"

	"vastra/utils"
)

// Error is a categorized application error carrying the HTTP status it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func MissingFields() *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: "All fields are required"}
}

func NotFound(msg string) *Error {
	if msg == "" {
		msg = "Not found"
	}
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func AlreadyExists(msg string) *Error {
	if msg == "" {
		msg = "Already exists"
	}
	return &Error{Status: http.StatusConflict, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func InvalidToken() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Invalid token"}
}

func ServerError(err error) *Error {
	if err != nil {
		log.Println("server error:", err)
	}
	return &Error{Status: http.StatusInternalServerError, Message: "Something went wrong"}
}

// Respond writes err as a JSON failure body. Uncategorized errors surface as a
// generic 500 so internals never leak to clients.
func Respond(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ServerError(err)
	}
	utils.RespondWithJSON(w, appErr.Status, utils.M{
		"message": appErr.Message,
		"status":  false,
	})
}
