package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/api/middleware"
	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testActor = domain.Identity{ID: 1, Email: "root@example.com", Role: domain.RoleSuperAdmin}

func newTestContext(method, target, body string, actor *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, *actor)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, json.RawMessage, string) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.Success, resp.Data, resp.Message
}

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubAuthService struct {
	signinFn func(ctx context.Context, email, password string) (*ports.SigninResult, error)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (*ports.SigninResult, error) {
	return s.signinFn(ctx, email, password)
}

type stubUserService struct {
	users      []domain.User
	err        error
	registered ports.RegisterUserInput
	updated    ports.UpdateUserInput
	deletedID  int
}

func (s *stubUserService) List(context.Context, domain.Identity) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Get(_ context.Context, _ domain.Identity, id int) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Register(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.registered = in
	return &domain.User{ID: 4, Name: in.Name, Email: in.Email, Password: "hash", Role: domain.RoleUser}, nil
}

func (s *stubUserService) Update(_ context.Context, _ domain.Identity, _ int, in ports.UpdateUserInput) error {
	s.updated = in
	return s.err
}

func (s *stubUserService) Delete(_ context.Context, _ domain.Identity, id int) error {
	s.deletedID = id
	return s.err
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuthHandler_Signin_Success(t *testing.T) {
	exp := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
	h := NewAuthHandler(&stubAuthService{
		signinFn: func(_ context.Context, email, password string) (*ports.SigninResult, error) {
			if email != "ada@example.com" || password != "adapass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.SigninResult{
				User:      domain.User{ID: 2, Email: email, Role: domain.RoleAdmin, Password: "hash"},
				Token:     "tok",
				ExpiresAt: exp,
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/auth/signin", `{"email":"ada@example.com","password":"adapass"}`, nil)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ok, data, _ := decodeEnvelope(t, rec)
	if !ok {
		t.Fatal("expected success envelope")
	}
	var got signinResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if got.ID != 2 || got.Role != domain.RoleAdmin || got.Token != "tok" || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatal("password must not be returned")
	}
}

func TestAuthHandler_Signin_Errors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		signinFn: func(context.Context, string, string) (*ports.SigninResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/signin", `{"email":"ada@example.com","password":"x"}`, nil)
	if err := h.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/auth/signin", `{"email":"ada@example.com"}`, nil)
	if err := h.Signin(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing password, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestUserHandler_Register(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/users", `{"name":"Carol","email":"carol@example.com","password":"pw"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered.Email != "carol@example.com" {
		t.Fatalf("unexpected input: %+v", svc.registered)
	}

	_, data, _ := decodeEnvelope(t, rec)
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if len(got) != 2 || got["email"] != "carol@example.com" || got["name"] != "Carol" {
		t.Fatalf("expected only email and name, got %v", got)
	}
}

func TestUserHandler_Register_ExactKeys(t *testing.T) {
	bodies := []string{
		`{"name":"C","email":"c@example.com","password":"pw","role":"superadmin"}`,
		`{"id":9,"name":"C","email":"c@example.com","password":"pw"}`,
		`{"name":"C","email":"c@example.com"}`,
		`{"name":"C","email":"not-an-email","password":"pw"}`,
		`{"name":"","email":"c@example.com","password":"pw"}`,
		``,
		`[]`,
	}

	for _, body := range bodies {
		svc := &stubUserService{}
		c, _ := newTestContext(http.MethodPost, "/users", body, nil)
		if err := NewUserHandler(svc).Register(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("body %s: expected ErrValidation, got %v", body, err)
		}
		if svc.registered != (ports.RegisterUserInput{}) {
			t.Errorf("body %s: service must not be called", body)
		}
	}
}

func TestUserHandler_ListHidesPasswords(t *testing.T) {
	h := NewUserHandler(&stubUserService{users: []domain.User{
		{ID: 1, Name: "Root", Email: "root@example.com", Password: "secret-hash", Role: domain.RoleSuperAdmin},
	}})

	c, rec := newTestContext(http.MethodGet, "/users", "", &testActor)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Get(t *testing.T) {
	h := NewUserHandler(&stubUserService{users: []domain.User{{ID: 3, Name: "Bob", Role: domain.RoleUser}}})

	c, rec := newTestContext(http.MethodGet, "/users/3", "", &testActor)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	_, data, _ := decodeEnvelope(t, rec)
	var got userResponse
	_ = json.Unmarshal(data, &got)
	if got.ID != 3 || got.Name != "Bob" {
		t.Fatalf("unexpected user: %+v", got)
	}

	c, _ = newTestContext(http.MethodGet, "/users/abc", "", &testActor)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Get(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad id, got %v", err)
	}
}

func TestUserHandler_RequiresActor(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodGet, "/users", "", nil)
	if err := h.List(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserHandler_UpdateAndDelete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/users/1", `{"name":"R","email":"r@example.com","password":"pw"}`, &testActor)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.updated.Name != "R" {
		t.Fatalf("unexpected update result: %d %+v", rec.Code, svc.updated)
	}

	c, _ = newTestContext(http.MethodPut, "/users/1", `{"name":"R"}`, &testActor)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for partial body, got %v", err)
	}

	svc.updated = ports.UpdateUserInput{}
	c, _ = newTestContext(http.MethodPut, "/users/3", `{"name":"R"}`, &testActor)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user's account, got %v", err)
	}
	if svc.updated.Name != "" {
		t.Fatal("service must not be called for another user's account")
	}

	c, rec = newTestContext(http.MethodDelete, "/users/3", "", &testActor)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if rec.Code != http.StatusNoContent || svc.deletedID != 3 {
		t.Fatalf("unexpected delete result: %d id=%d", rec.Code, svc.deletedID)
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

type stubStore struct {
	ports.RecordStore
	pingErr error
}

func (s stubStore) Ping(context.Context) error { return s.pingErr }

func TestHealthHandler(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "", nil)
	if err := NewHealthHandler(stubStore{}, "file").Liveness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("liveness: %v %d", err, rec.Code)
	}

	c, rec = newTestContext(http.MethodGet, "/health/ready", "", nil)
	if err := NewHealthHandler(stubStore{}, "file").Readiness(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("readiness ok: %v %d", err, rec.Code)
	}

	c, rec = newTestContext(http.MethodGet, "/health/ready", "", nil)
	h := NewHealthHandler(stubStore{pingErr: domain.ErrStorageUnavailable}, "redis")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var got readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != "degraded" || got.Dependencies["redis"].Status != "unhealthy" {
		t.Fatalf("unexpected readiness body: %+v", got)
	}
}
