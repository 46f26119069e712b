package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/log"
)

// Message is the JSON body of every non-entity response.
type Message struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

func WriteMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Message{Message: msg})
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	WriteMessage(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Will log a debug message, and send an HTTP response with status 404 naming
// the missing entity
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, entity string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	WriteMessage(w, r, http.StatusNotFound, entity+" not found")
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	WriteMessage(w, r, status, errMsg)
}

// Will log the rejected document, and send an HTTP response with status 400
// listing every problem found
func LogInvalid(w http.ResponseWriter, r *http.Request, code string, msg string, problems []string) {
	log.Debugf("%s: %s %v", code, msg, problems)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Message{Message: msg, Errors: problems})
}

// Will log the missing labels, and send an HTTP response with status 400
// listing them all
func LogMissingFields(w http.ResponseWriter, r *http.Request, code string, labels []string) {
	log.Debugf("%s: missing required fields %q", code, labels)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Message{Message: "Missing required fields", MissingFields: labels})
}
