// Package apierror writes the API's uniform failure body: a status code and
// a JSON object of the form {"error": "<message>"}. Client errors are logged
// at warn level and server errors at error level through the request-scoped
// zerolog logger.
package apierror

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type body struct {
	Error string `json:"error"`
}

// Write sends the failure response. message is what the caller sees; err,
// when non-nil, only feeds the log so internals never leak to clients.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Error: message})
}
