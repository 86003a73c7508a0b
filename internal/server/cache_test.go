package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestCacheGet_Missing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/cache/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if msg := gjson.GetBytes(w.Body.Bytes(), "message").String(); msg != "Key 'nope' not found in cache" {
		t.Errorf("message = %q", msg)
	}
}

func TestCacheSet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty object", `{}`, "Key is required"},
		{"empty key", `{"key": "", "value": 1}`, "Key is required"},
		{"malformed json", `{"key": `, "Invalid request body"},
		{"wrong type", `{"key": 5}`, "Invalid request body"},
		{"fractional minutes", `{"key": "k", "expirationMinutes": 1.5}`, "Invalid request body"},
		{"no body", ``, "Request body is required"},
		{"trailing garbage", `{"key": "t", "value": 1} garbage`, "Invalid request body"},
		{"second document", `{"key": "t", "value": 1}{"key": "u"}`, "Invalid request body"},
		{"minutes overflow duration", `{"key": "k", "value": 1, "expirationMinutes": 400000000}`, "expirationMinutes is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(http.MethodPost, "/api/cache", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if msg := gjson.GetBytes(w.Body.Bytes(), "message").String(); msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
			if env.store.Len() != 0 {
				t.Error("invalid request should not write to the store")
			}
		})
	}
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/cache", `{"key": "session", "value": {"user": "ada", "roles": ["admin"], "n": 3}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d, want 200", w.Code)
	}
	body := w.Body.Bytes()
	if got := gjson.GetBytes(body, "message").String(); got != "Value cached successfully" {
		t.Errorf("message = %q", got)
	}
	if got := gjson.GetBytes(body, "key").String(); got != "session" {
		t.Errorf("key = %q", got)
	}
	if env.store.LastTTL != 30*time.Minute {
		t.Errorf("ttl = %v, want default 30m", env.store.LastTTL)
	}

	w = env.do(http.MethodGet, "/api/cache/session", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", w.Code)
	}
	body = w.Body.Bytes()
	if got := gjson.GetBytes(body, "key").String(); got != "session" {
		t.Errorf("key = %q", got)
	}
	if got := gjson.GetBytes(body, "value.user").String(); got != "ada" {
		t.Errorf("value.user = %q", got)
	}
	if got := gjson.GetBytes(body, "value.roles.0").String(); got != "admin" {
		t.Errorf("value.roles.0 = %q", got)
	}
	if got := gjson.GetBytes(body, "value.n").Int(); got != 3 {
		t.Errorf("value.n = %d", got)
	}
}

func TestCacheSet_ScalarValue(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodPost, "/api/cache", `{"key": "greeting", "value": "hello"}`)

	w := env.do(http.MethodGet, "/api/cache/greeting", "")
	if got := gjson.GetBytes(w.Body.Bytes(), "value").String(); got != "hello" {
		t.Errorf("value = %q, want hello", got)
	}
}

func TestCacheSet_MissingValueStoresEmptyObject(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodPost, "/api/cache", `{"key": "blank"}`)

	raw, ok := env.store.Raw("blank")
	if !ok || raw != "{}" {
		t.Errorf("stored = %q (%v), want {}", raw, ok)
	}
}

func TestCacheSet_Expiration(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantTTL time.Duration
	}{
		{"explicit minutes", `{"key": "k", "value": 1, "expirationMinutes": 5}`, 5 * time.Minute},
		{"null minutes", `{"key": "k", "value": 1, "expirationMinutes": null}`, 30 * time.Minute},
		{"zero minutes", `{"key": "k", "value": 1, "expirationMinutes": 0}`, 30 * time.Minute},
		{"negative minutes", `{"key": "k", "value": 1, "expirationMinutes": -5}`, 30 * time.Minute},
		{"very negative minutes", `{"key": "k", "value": 1, "expirationMinutes": -400000000000}`, 30 * time.Minute},
		{"one year", `{"key": "k", "value": 1, "expirationMinutes": 525600}`, 365 * 24 * time.Hour},
		{"largest representable", `{"key": "k", "value": 1, "expirationMinutes": 153722867}`, 153722867 * time.Minute},
		{"trailing whitespace", "{\"key\": \"k\", \"value\": 1, \"expirationMinutes\": 3}\n\t ", 3 * time.Minute},
		{"case-insensitive field", `{"Key": "k", "Value": 1, "ExpirationMinutes": 2}`, 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(http.MethodPost, "/api/cache", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if env.store.LastTTL != tt.wantTTL {
				t.Errorf("ttl = %v, want %v", env.store.LastTTL, tt.wantTTL)
			}
		})
	}
}

func TestCacheDelete(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodPost, "/api/cache", `{"key": "k", "value": 1}`)

	w := env.do(http.MethodDelete, "/api/cache/k", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if msg := gjson.GetBytes(w.Body.Bytes(), "message").String(); msg != "Key 'k' removed from cache" {
		t.Errorf("message = %q", msg)
	}

	if w := env.do(http.MethodGet, "/api/cache/k", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want 404", w.Code)
	}

	// Deleting an absent key still succeeds.
	if w := env.do(http.MethodDelete, "/api/cache/never-set", ""); w.Code != http.StatusOK {
		t.Errorf("DELETE absent status = %d, want 200", w.Code)
	}
}

func TestCacheExists(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/cache/exists/k", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.Bytes()
	if gjson.GetBytes(body, "exists").Bool() {
		t.Error("exists = true before set")
	}
	if !gjson.GetBytes(body, "exists").Exists() {
		t.Error("exists field missing")
	}
	if got := gjson.GetBytes(body, "key").String(); got != "k" {
		t.Errorf("key = %q", got)
	}

	env.do(http.MethodPost, "/api/cache", `{"key": "k", "value": 1}`)

	w = env.do(http.MethodGet, "/api/cache/exists/k", "")
	if !gjson.GetBytes(w.Body.Bytes(), "exists").Bool() {
		t.Error("exists = false after set")
	}
}

func TestCacheEncodedKey(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodPost, "/api/cache", `{"key": "user:42 profile", "value": {"ok": true}}`)

	w := env.do(http.MethodGet, "/api/cache/user%3A42%20profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := gjson.GetBytes(w.Body.Bytes(), "key").String(); got != "user:42 profile" {
		t.Errorf("key = %q", got)
	}
}

func TestCacheHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/cache/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.Bytes()
	if got := gjson.GetBytes(body, "status").String(); got != "Redis cache is configured" {
		t.Errorf("status = %q", got)
	}
	ts, err := time.Parse(time.RFC3339Nano, gjson.GetBytes(body, "timestamp").String())
	if err != nil {
		t.Fatalf("timestamp: %v", err)
	}
	if !ts.Equal(fixedNow) {
		t.Errorf("timestamp = %v, want %v", ts, fixedNow)
	}

	// Health does not touch the store, so it stays green when Redis is down.
	env.store.Fail(nil)
	if w := env.do(http.MethodGet, "/api/cache/health", ""); w.Code != http.StatusOK {
		t.Errorf("status with store down = %d, want 200", w.Code)
	}
}

func TestCacheStoreDown(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/cache", `{"key": "k", "value": 1}`)
	env.store.Fail(nil)

	if w := env.do(http.MethodGet, "/api/cache/k", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET status = %d, want 404", w.Code)
	}
	if w := env.do(http.MethodPost, "/api/cache", `{"key": "k2", "value": 2}`); w.Code != http.StatusOK {
		t.Errorf("POST status = %d, want 200", w.Code)
	}
	if w := env.do(http.MethodDelete, "/api/cache/k", ""); w.Code != http.StatusOK {
		t.Errorf("DELETE status = %d, want 200", w.Code)
	}
	w := env.do(http.MethodGet, "/api/cache/exists/k", "")
	if w.Code != http.StatusOK || gjson.GetBytes(w.Body.Bytes(), "exists").Bool() {
		t.Errorf("exists = %d %s, want 200 false", w.Code, w.Body.String())
	}
}

func TestCacheRoutePrecedence(t *testing.T) {
	env := newTestEnv(t)

	// A key literally named "health" is shadowed by the health endpoint,
	// but "exists" alone is an ordinary key.
	env.do(http.MethodPost, "/api/cache", `{"key": "exists", "value": 7}`)

	w := env.do(http.MethodGet, "/api/cache/exists", "")
	if w.Code != http.StatusOK || gjson.GetBytes(w.Body.Bytes(), "value").Int() != 7 {
		t.Errorf("GET /api/cache/exists = %d %s", w.Code, w.Body.String())
	}
}
