package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound    = "https://stinger.app/problems/not-found"
	ProblemTypeBadRequest  = "https://stinger.app/problems/bad-request"
	ProblemTypeInternal    = "https://stinger.app/problems/internal-error"
	ProblemTypeRateLimited = "https://stinger.app/problems/rate-limited"
	ProblemTypeBadGateway  = "https://stinger.app/problems/upstream-error"
	ProblemTypeUnavailable = "https://stinger.app/problems/unavailable"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func writeStatus(w http.ResponseWriter, typ string, status int, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     typ,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeNotFound, http.StatusNotFound, detail, instance)
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeBadRequest, http.StatusBadRequest, detail, instance)
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeInternal, http.StatusInternalServerError, detail, instance)
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeRateLimited, http.StatusTooManyRequests, detail, instance)
}

// BadGateway writes a 502 problem response for upstream failures.
func BadGateway(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeBadGateway, http.StatusBadGateway, detail, instance)
}

// Unavailable writes a 503 problem response.
func Unavailable(w http.ResponseWriter, detail, instance string) {
	writeStatus(w, ProblemTypeUnavailable, http.StatusServiceUnavailable, detail, instance)
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
