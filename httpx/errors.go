package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mbolis/formbox/log"
	"github.com/mbolis/formbox/store"
)

// ErrorJSON sends an HTTP error response with a JSON body {"error": msg}.
func ErrorJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Will log an error, and send a 500 response with a generic JSON message.
// Error detail never leaves the server.
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	ErrorJSON(w, http.StatusInternalServerError, "Internal server error")
}

// Will log a debug message, and send a 404 response with the given message
func LogNotFound(w http.ResponseWriter, code string, msg string) {
	log.Debugf("%s: not found", code)
	ErrorJSON(w, http.StatusNotFound, msg)
}

// Will log an error code and message at the given level, and send an HTTP
// response with the given status and JSON message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	ErrorJSON(w, status, errMsg)
}

// LogStoreError maps a store error onto the HTTP taxonomy: ErrNotFound to
// 404 with notFoundMsg, ErrConflict to 409 with the store's own message,
// anything else to a logged 500.
func LogStoreError(w http.ResponseWriter, code string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		LogNotFound(w, code, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		log.Debugf("%s: %s", code, err)
		ErrorJSON(w, http.StatusConflict, conflictMessage(err))
	default:
		LogInternalError(w, code, err)
	}
}

// conflictMessage strips the wrapped sentinel suffix off a conflict error,
// leaving the human-readable part for the response body.
func conflictMessage(err error) string {
	msg := err.Error()
	if suffix := ": " + store.ErrConflict.Error(); len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return msg
}
