package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/repository/sqlite"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
)

type testServer struct {
	router  *gin.Engine
	repos   *sqlite.Repositories
	tokens  *auth.TokenService
	metrics *metrics.Metrics
	now     time.Time
}

func (s *testServer) advance(d time.Duration) { s.now = s.now.Add(d) }

func newTestServer(t *testing.T, mutate ...func(*Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := sqlite.NewRepositories(db)
	ctx := context.Background()
	for _, initFn := range []func(context.Context) error{
		repos.Accounts.Init, repos.About.Init, repos.Projects.Init,
		repos.Technologies.Init, repos.Homepage.Init, repos.Contact.Init,
	} {
		require.NoError(t, initFn(ctx))
	}

	accounts := service.NewAccountService(repos.Accounts, bcrypt.MinCost)
	_, _, err = accounts.EnsureAdmin(ctx, service.AdminSpec{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	srv := &testServer{repos: repos, now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	srv.tokens, err = auth.NewTokenService("test-secret", auth.WithClock(auth.ClockFunc(func() time.Time { return srv.now })))
	require.NoError(t, err)

	verifier, err := auth.NewVerifier(repos.Accounts, bcrypt.MinCost)
	require.NoError(t, err)

	staticDir := t.TempDir()
	files, err := storage.NewLocalService(staticDir, "/static")
	require.NoError(t, err)

	srv.metrics = metrics.New()
	cfg := Config{
		Verifier:     verifier,
		Tokens:       srv.tokens,
		Gate:         auth.NewGate(srv.tokens, repos.Accounts, auth.WithObserver(srv.metrics)),
		About:        service.NewAboutService(repos.About),
		Projects:     service.NewProjectService(repos.Projects),
		Technologies: service.NewTechnologyService(repos.Technologies),
		Homepage:     service.NewHomepageService(repos.Homepage, files),
		Contact:      service.NewContactService(repos.Contact),
		Metrics:      srv.metrics,
		Limiter:      NewRateLimiter(1000, time.Minute),
		StaticDir:    staticDir,
		StaticPath:   "/static",
		Port:         "5000",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	srv.router = gin.New()
	NewHandler(cfg).RegisterRoutes(srv.router)
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["error"].(string)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[LoginResponse](t, rec)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@example.com", resp.User.Email)
	assert.Equal(t, "Admin User", resp.User.FullName)

	claims, err := s.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.ID)

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "nope"}, "")
	unknownEmail := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": "admin123"}, "")
	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, rec))
	}

	missing := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "Email and password are required", errorOf(t, missing))
}

func TestVerifyEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["valid"])

	rec = s.do(t, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", errorOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/auth/verify", nil, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorOf(t, rec))

	s.advance(auth.TokenTTL)
	rec = s.do(t, http.MethodGet, "/api/auth/verify", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", errorOf(t, rec))
}

func TestVerifyEndpoint_DeletedSubject(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	_, err := s.repos.Accounts.DeleteAll(context.Background())
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/auth/verify", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", errorOf(t, rec))
}

func TestOptionalRoutesIgnoreExpiredTokens(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	s.advance(auth.TokenTTL + time.Second)

	rec := s.do(t, http.MethodGet, "/api/projects", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProjectsCRUD(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects", gin.H{"title": "Gearbox"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t)

	rec = s.do(t, http.MethodPost, "/api/projects", gin.H{"description": "no title"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title is required", errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/api/projects", gin.H{
		"title":        "Gearbox",
		"technologies": []string{"SolidWorks", "ANSYS"},
		"featured":     true,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[ProjectResponse](t, rec)
	assert.Equal(t, []string{"SolidWorks", "ANSYS"}, created.Technologies)
	assert.True(t, created.Featured)
	assert.NotEmpty(t, created.CreatedAt)

	rec = s.do(t, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ProjectResponse](t, rec), 1)

	path := "/api/projects/" + jsonID(created.ID)
	rec = s.do(t, http.MethodPut, path, gin.H{"featured": false, "github_url": "https://github.com/x/gearbox"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[ProjectResponse](t, rec)
	assert.False(t, updated.Featured)
	assert.Equal(t, "Gearbox", updated.Title)
	require.NotNil(t, updated.GithubURL)

	rec = s.do(t, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project deleted successfully", decode[map[string]any](t, rec)["message"])

	rec = s.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", errorOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/projects/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTechnologies(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/technologies", gin.H{"name": "MATLAB"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and category are required", errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/api/technologies", gin.H{"name": "MATLAB", "category": "Engineering Tools", "color": "#E67E22"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	tech := decode[TechnologyResponse](t, rec)

	rec = s.do(t, http.MethodDelete, "/api/technologies/"+jsonID(tech.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/technologies/"+jsonID(tech.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Technology not found", errorOf(t, rec))
}

func TestAboutLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/about", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "About information not found", errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/api/about", gin.H{"skills": []string{"CAD"}}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/about", gin.H{"content": "Engineer", "experience_years": 4}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/about", gin.H{"content": "Again"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "About information already exists. Use PUT to update.", errorOf(t, rec))

	rec = s.do(t, http.MethodPut, "/api/about", gin.H{"skills": []string{"Revit"}}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	about := decode[AboutResponse](t, rec)
	assert.Equal(t, "Engineer", about.Content)
	assert.Equal(t, []string{"Revit"}, about.Skills)
	assert.Equal(t, 4, about.ExperienceYears)
}

func TestHomepageAndCV(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPut, "/api/homepage", gin.H{"banner_title": "Design Engineer"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decode[HomepageResponse](t, rec)
	require.NotNil(t, settings.BannerTitle)
	assert.Equal(t, "Design Engineer", *settings.BannerTitle)

	rec = s.uploadCV(t, token, "cv", []byte("%PDF-1.7 test"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	upload := decode[UploadCVResponse](t, rec)
	assert.Equal(t, "CV uploaded successfully", upload.Message)
	assert.Equal(t, "/static/cv.pdf", upload.CVURL)
	require.NotNil(t, upload.CVFilePath)
	assert.Equal(t, "Design Engineer", *upload.BannerTitle)

	rec = s.do(t, http.MethodGet, "/static/cv.pdf", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.7 test", rec.Body.String())

	rec = s.uploadCV(t, token, "resume", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No CV file uploaded", errorOf(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/homepage/cv", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[HomepageResponse](t, rec).CVFilePath)
}

func (s *testServer) uploadCV(t *testing.T, token, field string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/homepage/upload-cv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestContactFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/contact/submit", gin.H{"name": "Ann", "email": "ann@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name, email, and message are required", errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/api/contact/submit", gin.H{"name": "Ann", "email": "ann@example.com", "message": "Hello"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Contact form submitted successfully", decode[map[string]any](t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/contact/submissions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t)
	rec = s.do(t, http.MethodGet, "/api/contact/submissions", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	subs := decode[[]SubmissionResponse](t, rec)
	require.Len(t, subs, 1)

	path := "/api/contact/submissions/" + jsonID(subs[0].ID)
	rec = s.do(t, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact submission not found", errorOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/contact/info", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/contact/info", gin.H{"email": "me@example.com"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/contact/info", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[ContactInfoResponse](t, rec)
	require.NotNil(t, info.Email)
	assert.Equal(t, "me@example.com", *info.Email)
}

func TestRateLimitOnAPI(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Limiter = NewRateLimiter(2, 15*time.Minute) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/health", nil, "").Code)
	}
	rec := s.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "900", rec.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests from this IP, please try again later.", errorOf(t, rec))

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/", nil, "").Code)

	metricsRec := s.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "portfolio_rate_limited_requests_total 1")
}

func (s *testServer) doFrom(remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Limiter = NewRateLimiter(2, time.Minute) })

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, s.doFrom("203.0.113.9:4444", fmt.Sprintf("10.0.0.%d", i)).Code)
	}
	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes)
}

func TestRateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.Limiter = NewRateLimiter(2, time.Minute)
		c.TrustedProxies = []string{"203.0.113.0/24"}
	})

	for i := 1; i <= 4; i++ {
		assert.Equal(t, http.StatusOK, s.doFrom("203.0.113.9:4444", fmt.Sprintf("10.0.0.%d", i)).Code)
	}
	s.doFrom("203.0.113.9:4444", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, s.doFrom("203.0.113.7:5555", "10.0.0.1").Code)
}

func TestRootHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/projects")

	rec = s.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decode[map[string]any](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = s.do(t, http.MethodGet, "/api/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", errorOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/auth/test", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Auth routes are working correctly", decode[map[string]any](t, rec)["message"])
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.AllowedOrigins = []string{"https://portfolio.example.com/"} })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://portfolio.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://portfolio.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = preflight("https://evil.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.BodyLimit = 64 })
	token := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/projects", gin.H{"title": strings.Repeat("x", 200)}, token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func jsonID(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
