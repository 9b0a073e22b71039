// Package shared holds the small helpers every handler package uses: JSON
// responses, domain-error translation, and query parameter parsing.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "warden/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError centralizes domain error translation to HTTP responses. Keeping
// it here ensures consistent JSON error envelopes.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error": string(code),
	})
}
