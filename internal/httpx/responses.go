package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a {"detail": message} body. Messages are user-facing;
// internal causes belong in the log, not here.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"detail": message})
}
