package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/config"
	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
	handlers "github.com/dforero/ecobarrio-api/internal/interface/http"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
	"github.com/dforero/ecobarrio-api/pkg/validation"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email || e.Username == u.Username {
			return repo.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUserRepo) UpdateProfile(_ context.Context, in *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[in.ID]
	if !ok {
		return repo.ErrNotFound
	}
	u.Neighborhood = in.Neighborhood
	u.Phone = in.Phone
	u.Address = in.Address
	return nil
}

type memResetRepo struct{}

func (memResetRepo) Create(context.Context, *entity.PasswordResetToken) error { return nil }
func (memResetRepo) Consume(context.Context, string) (*entity.PasswordResetToken, error) {
	return nil, nil
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string, string) error { return nil }

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		ResetPasswordURL: "http://localhost:8080/reset-password",
		ResetTokenTTL:    30 * time.Minute,
	}
	svc := application.NewAuthService(
		&memUserRepo{users: map[string]*entity.User{}},
		memResetRepo{},
		helpers.NewJWTManager("test-secret", time.Hour),
		noopMailer{},
		logger,
		cfg,
	)
	h := handlers.NewAuthHandler(svc, logger)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"username": "jdoe",
	"password": "Secr3t!",
	"email": "jdoe@example.com",
	"neighborhood": "Centro",
	"phone": "3001234567",
	"address": "Calle 10 # 5-23"
}`

// Registration validates field presence only; short passwords are accepted.
func TestRegisterAcceptsShortPassword(t *testing.T) {
	r := newAuthRouter()

	w := postJSON(r, "/api/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "jdoe@example.com")
	require.NotContains(t, w.Body.String(), "Secr3t!")
}

func TestRegisterMissingFields(t *testing.T) {
	r := newAuthRouter()

	w := postJSON(r, "/api/auth/register", `{"username":"jdoe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRoundtripAndBadPassword(t *testing.T) {
	r := newAuthRouter()
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/auth/register", registerBody).Code)

	ok := postJSON(r, "/api/auth/login", `{"email":"jdoe@example.com","password":"Secr3t!"}`)
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())
	require.Contains(t, ok.Body.String(), "token")

	bad := postJSON(r, "/api/auth/login", `{"email":"jdoe@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, bad.Code)
	require.Contains(t, bad.Body.String(), "invalid credentials")

	unknown := postJSON(r, "/api/auth/login", `{"email":"nobody@example.com","password":"Secr3t!"}`)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.JSONEq(t, stripTimestamps(t, bad.Body.String()), stripTimestamps(t, unknown.Body.String()))
}

// stripTimestamps blanks the envelope timestamp so two failure bodies can be
// compared for byte-equality of everything the client can distinguish.
func stripTimestamps(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, `"timestamp"`)
	require.GreaterOrEqual(t, idx, 0)
	end := strings.Index(body[idx:], ",")
	require.Greater(t, end, 0)
	return body[:idx] + `"timestamp":""` + body[idx+end:]
}
