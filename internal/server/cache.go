package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// maxSetBodyBytes bounds the POST /api/cache request body.
const maxSetBodyBytes = 1 << 20

// maxExpirationMinutes is the largest TTL representable as a time.Duration.
const maxExpirationMinutes = int64(math.MaxInt64 / time.Minute)

// setRequest is the body of POST /api/cache.
type setRequest struct {
	Key               string          `json:"key"`
	Value             json.RawMessage `json:"value"`
	ExpirationMinutes *int            `json:"expirationMinutes"`
}

type entryResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type setResponse struct {
	Message string `json:"message"`
	Key     string `json:"key"`
}

type existsResponse struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
}

type cacheHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

var emptyObject = json.RawMessage("{}")

// handleCacheGet serves GET /api/cache/{key}.
func (s *server) handleCacheGet(w http.ResponseWriter, r *http.Request) {
	key := pathParam(r, "key")

	var value json.RawMessage
	if !s.deps.Cache.Get(r.Context(), key, &value) {
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: fmt.Sprintf("Key '%s' not found in cache", key),
		})
		return
	}

	writeJSON(w, http.StatusOK, entryResponse{Key: key, Value: value})
}

// handleCacheSet serves POST /api/cache. The write is best-effort: a
// failing store still yields 200.
func (s *server) handleCacheSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSetBodyBytes))
	if err := dec.Decode(&req); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msg})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	if req.Key == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Key is required"})
		return
	}

	value := req.Value
	if len(value) == 0 {
		value = emptyObject
	}

	var ttl time.Duration
	if req.ExpirationMinutes != nil {
		minutes := int64(*req.ExpirationMinutes)
		if minutes > maxExpirationMinutes {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "expirationMinutes is out of range"})
			return
		}
		// Zero or negative leaves ttl unset so the gateway default applies.
		if minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	s.deps.Cache.Set(r.Context(), req.Key, value, ttl)

	writeJSON(w, http.StatusOK, setResponse{
		Message: "Value cached successfully",
		Key:     req.Key,
	})
}

// handleCacheDelete serves DELETE /api/cache/{key}. It succeeds whether or
// not the key existed.
func (s *server) handleCacheDelete(w http.ResponseWriter, r *http.Request) {
	key := pathParam(r, "key")

	s.deps.Cache.Remove(r.Context(), key)

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Key '%s' removed from cache", key),
	})
}

// handleCacheExists serves GET /api/cache/exists/{key}.
func (s *server) handleCacheExists(w http.ResponseWriter, r *http.Request) {
	key := pathParam(r, "key")

	writeJSON(w, http.StatusOK, existsResponse{
		Key:    key,
		Exists: s.deps.Cache.Exists(r.Context(), key),
	})
}

// handleCacheHealth serves GET /api/cache/health. It reports configuration
// only; /ready checks connectivity.
func (s *server) handleCacheHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, cacheHealthResponse{
		Status:    "Redis cache is configured",
		Timestamp: s.deps.Now().UTC(),
	})
}
