package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an error body. Internal failures are logged
// with the request path; client errors are logged at debug level.
func WriteError(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, err error) {
	apiErr := AsError(err)

	if logger != nil {
		entry := logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"kind":   apiErr.Kind,
		})
		if apiErr.Kind == InternalError {
			entry.WithError(apiErr.Err).Error("Request failed")
		} else {
			entry.Debug(apiErr.Message)
		}
	}

	WriteJSON(w, apiErr.Status(), ErrorBody{Error: apiErr.Message})
}
