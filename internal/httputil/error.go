package httputil

import (
	"log/slog"
	"net/http"
)

// InternalServerError logs err and answers with a generic message; the cause stays server-side.
func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusBadRequest, "bad request", msg, err)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusNotFound, "not found", msg, err)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusConflict, "conflict", msg, err)
}

func NotImplemented(w http.ResponseWriter, msg string, err error) {
	clientError(w, http.StatusNotImplemented, "not implemented", msg, err)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

func clientError(w http.ResponseWriter, status int, kind, msg string, err error) {
	if err != nil {
		slog.Warn(kind, "message", msg, "error", err)
	} else {
		slog.Warn(kind, "message", msg)
	}
	Error(w, status, msg)
}
