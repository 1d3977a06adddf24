package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/handlers"
	"github.com/unq-dapp-grupoM/futbol-api/internal/middleware"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/internal/scraper"
)

const testAPIKey = "internal-test-key"

// fakeRepository is an in-memory database.Repository for end-to-end tests.
type fakeRepository struct {
	mu      sync.Mutex
	users   map[string]*models.User
	nextID  int64
	history []models.QueryHistory
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeRepository) Close() error { return nil }

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeRepository) SaveQuery(ctx context.Context, entry *models.QueryHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeRepository) GetHistoryByDateAndPlayer(ctx context.Context, date time.Time, playerName string) ([]models.QueryHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.QueryHistory
	for _, entry := range f.history {
		entryDate := time.Time(entry.QueryDate)
		if entry.PlayerName == playerName &&
			entryDate.Year() == date.Year() && entryDate.YearDay() == date.YearDay() {
			out = append(out, entry)
		}
	}
	return out, nil
}

// newTestServer wires the full stack against an in-memory repository and a
// stub scraper service.
func newTestServer(t *testing.T) (http.Handler, *fakeRepository) {
	t.Helper()

	scraperSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/scrape/player":
			w.Write([]byte(`[{"name":"Lionel Messi","team":"Inter Miami"}]`))
		case "/api/scrape/team":
			w.Write([]byte(`[{"name":"Boca Juniors"}]`))
		default:
			w.Write([]byte(`{"result":"ok"}`))
		}
	}))
	t.Cleanup(scraperSrv.Close)

	logger := zap.NewNop()
	repo := newFakeRepository()

	codec := auth.NewCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	authService := auth.NewService(repo, codec, logger)
	scraperClient := scraper.NewClient(scraperSrv.URL, 5*time.Second, nil, time.Minute, logger)

	authenticator := middleware.NewAuthenticator(auth.DefaultRoutes(), codec, testAPIKey, authService, logger)
	rateLimit := middleware.RateLimitMiddleware(nil, logger, 100, time.Minute)

	handler := SetupRouter(
		handlers.NewAuthHandler(authService, logger),
		handlers.NewPlayerHandler(scraperClient, repo, authService, logger),
		handlers.NewTeamHandler(scraperClient, logger),
		handlers.NewAnalysisHandler(scraperClient, repo, authService, logger),
		handlers.NewHistoryHandler(repo, logger),
		handlers.NewInternalHandler(nil, scraperSrv.URL, logger),
		authenticator,
		rateLimit,
		logger,
	)
	return handler, repo
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginAndAccessProtectedRoute(t *testing.T) {
	handler, _ := newTestServer(t)

	// Register
	rec := postJSON(t, handler, "/api/auth/register", models.RegisterRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Login
	rec = postJSON(t, handler, "/api/auth/login", models.AuthenticationRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loginResp models.AuthenticationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	// Protected route with the token
	req := httptest.NewRequest("GET", "/api/player?playerName=Lionel+Messi", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())
	assert.Contains(t, rec2.Body.String(), "Lionel Messi")

	// Same route without credentials
	req = httptest.NewRequest("GET", "/api/player?playerName=Lionel+Messi", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req)
	assert.Equal(t, http.StatusForbidden, rec3.Code)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	handler, repo := newTestServer(t)

	rec := postJSON(t, handler, "/api/auth/register", models.RegisterRequest{
		Email:    "  Test@Example.COM  ",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := repo.GetUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)

	rec = postJSON(t, handler, "/api/auth/login", models.AuthenticationRequest{
		Email:    "test@example.com",
		Password: "pass123",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRegisterPasswordPolicyMessages(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := postJSON(t, handler, "/api/auth/register", models.RegisterRequest{
		Email:    "a@b.com",
		Password: "password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(),
		"Password must be at least 6 characters long and contain at least one digit.")
}

func TestLoginWrongPasswordIsForbidden(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := postJSON(t, handler, "/api/auth/register", models.RegisterRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler, "/api/auth/login", models.AuthenticationRequest{
		Email:    "a@b.com",
		Password: "wrong99",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInternalRoutesRequireAPIKey(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/internal/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest("GET", "/api/v1/internal/status", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAnalysisQueriesAreRecordedInHistory(t *testing.T) {
	handler, repo := newTestServer(t)

	rec := postJSON(t, handler, "/api/auth/register", models.RegisterRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler, "/api/auth/login", models.AuthenticationRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp models.AuthenticationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))

	req := httptest.NewRequest("GET", "/api/analysis/Messi/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())

	require.Len(t, repo.history, 1)
	assert.Equal(t, "Messi", repo.history[0].PlayerName)
	assert.Equal(t, models.QueryPerformance, repo.history[0].QueryType)

	// Read it back through the API.
	today := time.Now().Format("02/01/2006")
	req = httptest.NewRequest("GET", "/api/history?date="+today+"&playerName=Messi", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req)
	require.Equal(t, http.StatusOK, rec3.Code, rec3.Body.String())

	var entries []models.QueryHistory
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.QueryPerformance, entries[0].QueryType)
}
