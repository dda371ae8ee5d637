// Package httpx provides the JSON response conventions of the /api/v1
// surface: a {"data": ...} envelope for payloads, {"message": ...} for
// failures, with Laravel-style pagination metadata on paginated listings.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Data wraps payload in the data envelope.
func Data(w http.ResponseWriter, status int, payload any) {
	JSON(w, status, map[string]any{"data": payload})
}

// Paginated sends one server-side page with its pagination metadata.
func Paginated(w http.ResponseWriter, status int, items any, currentPage, perPage, total, lastPage int) {
	JSON(w, status, map[string]any{
		"data":         items,
		"current_page": currentPage,
		"per_page":     perPage,
		"total":        total,
		"last_page":    lastPage,
	})
}

// Message sends a bare {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// FieldErrors sends a message plus per-field error lists, the shape modal
// forms bind their inline errors to.
func FieldErrors(w http.ResponseWriter, status int, msg string, errs map[string][]string) {
	JSON(w, status, map[string]any{
		"message": msg,
		"errors":  errs,
	})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
