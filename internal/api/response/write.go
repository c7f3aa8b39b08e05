package response

import (
	"encoding/json"
	"net/http"
)

// Every API response describes the calling browser's session, so none may be cached
func private(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	private(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	private(w)
	w.WriteHeader(http.StatusNoContent)
}
