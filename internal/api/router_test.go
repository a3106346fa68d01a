package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	_ "github.com/taskboard/taskboard-api/docs"
	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, readiness map[string]handler.Pinger) *echo.Echo {
	t.Helper()
	repo := memory.NewUserRepository()
	if readiness == nil {
		readiness = map[string]handler.Pinger{"memory": repo}
	}
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Users:      service.NewUserService(repo, zerolog.Nop()),
		Logger:     zerolog.Nop(),
		Readiness:  readiness,
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestRouter_CreateThenDuplicate(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodPost, "/api/users", `{"name":"Denise"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" || created.Name != "Denise" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	rec = do(e, http.MethodPost, "/api/users", `{"name":"Denise"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != `User with name "Denise" already exists.` {
		t.Errorf("unexpected message: %q", msg)
	}

	rec = do(e, http.MethodGet, "/api/users/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fetched struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if fetched != created {
		t.Errorf("expected %+v, got %+v", created, fetched)
	}
}

func TestRouter_CreateWithID(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodPost, "/api/users", `{"id":"00000000-0000-0000-0000-000000000000","name":"Denise"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "User id must not be set" {
		t.Errorf("unexpected message: %q", msg)
	}

	rec = do(e, http.MethodGet, "/api/users", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected no users, got %s", rec.Body.String())
	}
}

func TestRouter_CreateInvalidPayload(t *testing.T) {
	e := newTestRouter(t, nil)

	for _, body := range []string{`{"name":`, `{}`, `{"name":"   "}`, `{"name":"Den\u0000ise"}`, `{"name":"` + strings.Repeat("a", 256) + `"}`} {
		rec := do(e, http.MethodPost, "/api/users", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %.20q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestRouter_GetUnknownUser(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodGet, "/api/users/00000000-0000-0000-0000-000000000000", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "User with ID 00000000-0000-0000-0000-000000000000 does not exist." {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestRouter_GetInvalidID(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodGet, "/api/users/42", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "invalid user id" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestRouter_List(t *testing.T) {
	e := newTestRouter(t, nil)

	for _, name := range []string{"Denise", "Ada"} {
		if rec := do(e, http.MethodPost, "/api/users", `{"name":"`+name+`"}`); rec.Code != http.StatusOK {
			t.Fatalf("create %s: %d", name, rec.Code)
		}
	}

	rec := do(e, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(users) != 2 || users[0]["name"] != "Denise" || users[1]["name"] != "Ada" {
		t.Errorf("unexpected users: %v", users)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodGet, "/api/tasks", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg == "" {
		t.Error("expected an error message")
	}
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(t, nil)

	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("readiness: expected 200, got %d", rec.Code)
	}

	down := newTestRouter(t, map[string]handler.Pinger{
		"postgres": pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rec := do(down, http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness: expected 503, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	e := newTestRouter(t, nil)

	do(e, http.MethodGet, "/api/users", "")

	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("expected HTTP request metrics, got:\n%s", rec.Body.String())
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(e, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"/api/users/{id}"`) {
		t.Errorf("expected user paths in swagger doc")
	}
}
