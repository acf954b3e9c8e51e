package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Canned is a fixed response returned instead of the default handler.
type Canned struct {
	Status int
	Body   string
}

// Backend is an in-process fake of the palette API. It records every
// request so tests can assert that no network call happened.
type Backend struct {
	*httptest.Server

	mu        sync.Mutex
	token     string
	users     map[string]string
	user      map[string]interface{}
	health    string
	palettes  []map[string]interface{}
	canned    map[string]Canned
	hits      map[string]int
	total     int
	lastBody  map[string][]byte
	lastQuery map[string]string
}

// NewBackend starts a fake backend accepting token as the only valid bearer
// token. It is closed when the test ends.
func NewBackend(t *testing.T, token string) *Backend {
	t.Helper()
	b := &Backend{
		token:     token,
		users:     map[string]string{"alice": "secret"},
		user:      map[string]interface{}{"id": 1, "username": "alice", "full_name": "Alice Liddell", "role": "user"},
		health:    "healthy",
		canned:    make(map[string]Canned),
		hits:      make(map[string]int),
		lastBody:  make(map[string][]byte),
		lastQuery: make(map[string]string),
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Use(b.serveCanned)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		status := b.health
		b.mu.Unlock()
		respond(w, http.StatusOK, map[string]string{"status": status, "security": "enabled"})
	})
	r.Post("/token", b.handleToken)

	r.Group(func(auth chi.Router) {
		auth.Use(b.requireToken)
		auth.Post("/analyze", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(JoyResult))
		})
		auth.Get("/gallery", b.handleGallery)
		auth.Delete("/palettes/{id}", b.handleDelete)
		auth.Get("/users/me", func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			respond(w, http.StatusOK, b.user)
		})
		auth.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			respond(w, http.StatusOK, map[string]interface{}{
				"total_palettes": len(b.palettes),
				"total_users":    len(b.users),
				"api_version":    "2.0.0",
			})
		})
	})
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		b.mu.Lock()
		b.hits[key]++
		b.total++
		b.lastBody[key] = body
		b.lastQuery[key] = r.URL.RawQuery
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) serveCanned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		c, ok := b.canned[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(c.Status)
		_, _ = w.Write([]byte(c.Body))
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			respond(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": "bad form"})
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	b.mu.Lock()
	defer b.mu.Unlock()
	if want, ok := b.users[username]; !ok || want != password {
		respond(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		return
	}
	user := make(map[string]interface{}, len(b.user))
	for k, v := range b.user {
		user[k] = v
	}
	user["username"] = username
	respond(w, http.StatusOK, map[string]interface{}{
		"access_token": b.token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (b *Backend) handleGallery(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.palettes
	if len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	respond(w, http.StatusOK, map[string]interface{}{"total": len(rows), "palettes": rows})
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.palettes {
		if idString(p["id"]) == id {
			b.palettes = append(b.palettes[:i], b.palettes[i+1:]...)
			respond(w, http.StatusOK, map[string]interface{}{"message": "deleted", "id": p["id"]})
			return
		}
	}
	respond(w, http.StatusNotFound, map[string]string{"detail": "not found"})
}

// SetHealth sets the status reported by /health.
func (b *Backend) SetHealth(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.health = status
}

// SetPalettes replaces the stored gallery rows.
func (b *Backend) SetPalettes(rows ...map[string]interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.palettes = rows
}

// SetUser replaces the profile returned by /token and /users/me.
func (b *Backend) SetUser(user map[string]interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = user
}

// Respond makes method+path always answer with status and body.
func (b *Backend) Respond(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.canned[method+" "+path] = Canned{Status: status, Body: body}
}

// Hits returns how many times method+path was requested.
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

// Total returns the number of requests of any kind.
func (b *Backend) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// LastBody returns the last request body sent to method+path.
func (b *Backend) LastBody(method, path string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody[method+" "+path]
}

// LastQuery returns the raw query of the last request to method+path.
func (b *Backend) LastQuery(method, path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery[method+" "+path]
}

func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case int:
		return strconv.Itoa(id)
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
