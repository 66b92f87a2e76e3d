package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/api/http/handlers"
	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/observability"
	"github.com/interinest/marketplace/internal/service"
)

const sessionTTL = 72 * time.Hour

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	sess, _ := args.Get(0).(*domain.Session)
	return sess, args.Error(1)
}

func (m *mockSessions) Register(ctx context.Context, in service.RegistrationInput) (*domain.Session, error) {
	args := m.Called(ctx, in)
	sess, _ := args.Get(0).(*domain.Session)
	return sess, args.Error(1)
}

func (m *mockSessions) Logout(ctx context.Context, sess *domain.Session) error {
	return m.Called(ctx, sess).Error(0)
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) Profile(ctx context.Context, subjectID string) (*domain.Account, error) {
	args := m.Called(ctx, subjectID)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *mockAccounts) DesignerDashboard(ctx context.Context, subjectID string) (*service.DesignerDashboard, error) {
	args := m.Called(ctx, subjectID)
	d, _ := args.Get(0).(*service.DesignerDashboard)
	return d, args.Error(1)
}

func (m *mockAccounts) UpdatePortfolio(ctx context.Context, subjectID string, in service.PortfolioInput) (*domain.Account, error) {
	args := m.Called(ctx, subjectID, in)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *mockAccounts) PublicDesigner(ctx context.Context, subjectID string) (*domain.Account, error) {
	args := m.Called(ctx, subjectID)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

type mockProjects struct{ mock.Mock }

func (m *mockProjects) Create(ctx context.Context, ownerID string, in service.ProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, ownerID, in)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) Update(ctx context.Context, ownerID, projectID string, in service.ProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, ownerID, projectID, in)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) Delete(ctx context.Context, ownerID, projectID string) error {
	return m.Called(ctx, ownerID, projectID).Error(0)
}

func (m *mockProjects) Get(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, ownerID, projectID)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) ListOwned(ctx context.Context, ownerID string, limit, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	p, _ := args.Get(0).([]domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) ListPublished(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, limit, offset)
	p, _ := args.Get(0).([]domain.Project)
	return p, args.Error(1)
}

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) Stats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

func (m *mockAdmin) ListDesigners(ctx context.Context, status *domain.AccountStatus, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, status, limit, offset)
	a, _ := args.Get(0).([]domain.Account)
	return a, args.Error(1)
}

func (m *mockAdmin) ApproveDesigner(ctx context.Context, adminID, designerID string) (*domain.Account, error) {
	args := m.Called(ctx, adminID, designerID)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *mockAdmin) SetAccountDisabled(ctx context.Context, adminID, subjectID string, disabled bool) (*domain.Account, error) {
	args := m.Called(ctx, adminID, subjectID, disabled)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

type pingStub struct{ err error }

func (p pingStub) Ping(context.Context) error { return p.err }

type testServer struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	sessions *mockSessions
	accounts *mockAccounts
	projects *mockProjects
	admin    *mockAdmin
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		tokens:   auth.NewTokenManager("router-secret", sessionTTL),
		sessions: &mockSessions{},
		accounts: &mockAccounts{},
		projects: &mockProjects{},
		admin:    &mockAdmin{},
	}
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	gate := auth.NewGate()

	s.app = NewApp("interinest-test")
	RegisterMiddlewares(s.app, logger, metrics, time.Second)
	RegisterRoutes(s.app, RouteConfig{
		Health:   handlers.NewHealthHandler("interinest", "test",
			handlers.Probe{Name: "postgres", Target: pingStub{}},
			handlers.Probe{Name: "redis", Target: pingStub{err: errors.New("down")}},
		),
		Auth:     handlers.NewAuthHandler(s.sessions, gate, sessionTTL),
		Designer: handlers.NewDesignerHandler(s.accounts, s.projects),
		Admin:    handlers.NewAdminHandler(s.admin),
		User:     handlers.NewUserHandler(s.accounts),
		Catalog:  handlers.NewCatalogHandler(s.accounts, s.projects),
		Gate:     auth.NewGateMiddleware(gate, s.tokens, logger, metrics),
		Metrics:  metrics,
	})

	t.Cleanup(func() {
		s.sessions.AssertExpectations(t)
		s.accounts.AssertExpectations(t)
		s.projects.AssertExpectations(t)
		s.admin.AssertExpectations(t)
	})
	return s
}

func (s *testServer) session(t *testing.T, uid string, role domain.Role) *domain.Session {
	t.Helper()
	token, exp, err := s.tokens.GenerateToken(uid, role)
	require.NoError(t, err)
	return &domain.Session{SubjectID: uid, Role: role, Token: token, ExpiresAt: exp}
}

func (s *testServer) do(t *testing.T, req *nethttp.Request, sess *domain.Session) *nethttp.Response {
	t.Helper()
	if sess != nil {
		req.AddCookie(&nethttp.Cookie{Name: auth.CookieToken, Value: sess.Token})
		req.AddCookie(&nethttp.Cookie{Name: auth.CookieRole, Value: string(sess.Role)})
		req.AddCookie(&nethttp.Cookie{Name: auth.CookieUID, Value: sess.SubjectID})
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, target, body string) *nethttp.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	body := decode(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return errObj["code"].(string)
}

func TestRoutes_DesignerOnAdminRedirectsToOwnDashboard(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/admin", nil), s.session(t, "d1", domain.RoleDesigner))
	assert.Equal(t, nethttp.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/designer-dashboard", resp.Header.Get("Location"))
}

func TestRoutes_CaseVariantsOfProtectedPathsServeNothing(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		sess *domain.Session
	}{
		{name: "anonymous upper-case admin", path: "/ADMIN"},
		{name: "anonymous mixed-case designer projects", path: "/Designer-Dashboard/projects"},
		{name: "designer on mixed-case admin", path: "/Admin", sess: s.session(t, "d1", domain.RoleDesigner)},
		{name: "admin on mixed-case admin", path: "/Admin", sess: s.session(t, "a1", domain.RoleAdmin)},
	}
	for _, tt := range tests {
		resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, tt.path, nil), tt.sess)
		assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode, tt.name)
		assert.Empty(t, resp.Header.Get("Location"), tt.name)
	}

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/admin", nil), nil)
	assert.Equal(t, nethttp.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fadmin", resp.Header.Get("Location"))
}

func TestRoutes_AnonymousProtectedRedirectsToLogin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/designer-dashboard/projects", nil), nil)
	assert.Equal(t, nethttp.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fdesigner-dashboard%2Fprojects", resp.Header.Get("Location"))
}

func TestRoutes_LoginPageRedirectsSignedInAdmin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/login", nil), s.session(t, "a1", domain.RoleAdmin))
	assert.Equal(t, nethttp.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestRoutes_LoginInvalidCredentialsSetsNoCookies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.sessions.On("Login", mock.Anything, "nobody@x.com", "pw").Return(nil, service.ErrInvalidCredentials)

	resp := s.do(t, jsonRequest(nethttp.MethodPost, "/login", `{"email":"nobody@x.com","password":"pw"}`), nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))
}

func TestRoutes_LoginWritesSessionCookies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	sess := s.session(t, "d1", domain.RoleDesigner)
	s.sessions.On("Login", mock.Anything, "d@x.com", "pw").Return(sess, nil)

	req := jsonRequest(nethttp.MethodPost, "/login?redirect=%2Fdesigner-dashboard%2Fprojects", `{"email":"d@x.com","password":"pw"}`)
	req.Header.Set("X-Forwarded-Proto", "https")
	resp := s.do(t, req, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	values := map[string]*nethttp.Cookie{}
	for _, c := range resp.Cookies() {
		values[c.Name] = c
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, 259200, c.MaxAge)
		assert.Equal(t, nethttp.SameSiteLaxMode, c.SameSite)
		assert.True(t, c.Secure)
	}
	require.Len(t, values, 3)
	assert.Equal(t, sess.Token, values[auth.CookieToken].Value)
	assert.True(t, values[auth.CookieToken].HttpOnly)
	assert.Equal(t, "designer", values[auth.CookieRole].Value)
	assert.Equal(t, "d1", values[auth.CookieUID].Value)

	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "designer", data["role"])
	assert.Equal(t, "/designer-dashboard/projects", data["redirect"])
}

func TestRoutes_LoginOverPlainHTTPIsNotSecure(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.sessions.On("Login", mock.Anything, "u@x.com", "pw").Return(s.session(t, "u1", domain.RoleUser), nil)

	resp := s.do(t, jsonRequest(nethttp.MethodPost, "/login", `{"email":"u@x.com","password":"pw","redirect":"/admin"}`), nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies(), 3)
	for _, c := range resp.Cookies() {
		assert.False(t, c.Secure, c.Name)
	}
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "/user-dashboard", data["redirect"])
}

func TestRoutes_RegisterDuplicatePhone(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.sessions.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegistrationInput) bool {
		return in.Phone == "+1555" && len(in.ImageURLs) == 2
	})).Return(nil, service.ErrPhoneAlreadyInUse)

	body := `{"email":"n@x.com","password":"secret1","fullName":"N","phone":"+1555","imageUrls":["a","b"]}`
	resp := s.do(t, jsonRequest(nethttp.MethodPost, "/register", body), nil)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, "PHONE_IN_USE", errorCode(t, resp))
}

func TestRoutes_RegisterSuccess(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.sessions.On("Register", mock.Anything, mock.Anything).Return(s.session(t, "d9", domain.RoleDesigner), nil)

	body := `{"email":"n@x.com","password":"secret1","fullName":"N","phone":"+1555","imageUrls":["a","b"]}`
	resp := s.do(t, jsonRequest(nethttp.MethodPost, "/register", body), nil)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Len(t, resp.Cookies(), 3)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "/designer-dashboard", data["redirect"])
}

func TestRoutes_LogoutClearsCookies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	sess := s.session(t, "u1", domain.RoleUser)
	s.sessions.On("Logout", mock.Anything, mock.MatchedBy(func(got *domain.Session) bool {
		return got.SubjectID == "u1"
	})).Return(nil)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodPost, "/logout", nil), sess)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies(), 3)
	for _, c := range resp.Cookies() {
		assert.Empty(t, c.Value, c.Name)
		assert.True(t, c.Expires.Before(time.Now()), c.Name)
	}
}

func TestRoutes_DesignerProjectLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	sess := s.session(t, "d1", domain.RoleDesigner)
	created := &domain.Project{ID: "p1", OwnerID: "d1", Title: "Loft", Category: domain.ProjectCategoryInterior, Status: domain.ProjectStatusDraft}

	s.projects.On("Create", mock.Anything, "d1", mock.MatchedBy(func(in service.ProjectInput) bool {
		return in.Title == "Loft" && in.Category == domain.ProjectCategoryInterior
	})).Return(created, nil)
	s.projects.On("Get", mock.Anything, "d1", "missing").Return(nil, errNotFound())
	s.projects.On("Delete", mock.Anything, "d1", "p1").Return(nil)

	body := `{"title":"Loft","category":"Interior","budget":"1","duration":"2","location":"x","imageUrls":["a","b","c"]}`
	resp := s.do(t, jsonRequest(nethttp.MethodPost, "/designer-dashboard/projects", body), sess)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "p1", data["id"])
	assert.Equal(t, []any{}, data["tags"])

	resp = s.do(t, httptest.NewRequest(nethttp.MethodGet, "/designer-dashboard/projects/missing", nil), sess)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp = s.do(t, httptest.NewRequest(nethttp.MethodDelete, "/designer-dashboard/projects/p1", nil), sess)
	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
}

func TestRoutes_AdminDashboardAndApproval(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	sess := s.session(t, "a1", domain.RoleAdmin)
	s.admin.On("Stats", mock.Anything).Return(domain.DashboardStats{TotalDesigners: 3, PendingDesigners: 1, PublishedProjects: 2}, nil)
	s.admin.On("ApproveDesigner", mock.Anything, "a1", "d2").
		Return(&domain.Account{SubjectID: "d2", Role: domain.RoleDesigner, Status: domain.AccountStatusApproved}, nil)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/admin", nil), sess)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 3, data["totalDesigners"])
	assert.EqualValues(t, 2, data["publishedProjects"])

	resp = s.do(t, httptest.NewRequest(nethttp.MethodPost, "/admin/designers/d2/approve", nil), sess)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", decode(t, resp)["data"].(map[string]any)["status"])

	resp = s.do(t, httptest.NewRequest(nethttp.MethodGet, "/admin/designers?status=archived", nil), sess)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestRoutes_AdminDisablesAndEnablesAccount(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	sess := s.session(t, "a1", domain.RoleAdmin)
	account := &domain.Account{SubjectID: "d2", Role: domain.RoleDesigner, Status: domain.AccountStatusApproved}
	s.admin.On("SetAccountDisabled", mock.Anything, "a1", "d2", true).Return(account, nil).Once()
	s.admin.On("SetAccountDisabled", mock.Anything, "a1", "d2", false).Return(account, nil).Once()

	resp := s.do(t, httptest.NewRequest(nethttp.MethodPost, "/admin/accounts/d2/disable", nil), sess)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, data["disabled"])

	resp = s.do(t, httptest.NewRequest(nethttp.MethodPost, "/admin/accounts/d2/enable", nil), sess)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["data"].(map[string]any)["disabled"])

	designer := s.session(t, "d9", domain.RoleDesigner)
	resp = s.do(t, httptest.NewRequest(nethttp.MethodPost, "/admin/accounts/d2/disable", nil), designer)
	assert.Equal(t, nethttp.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/designer-dashboard", resp.Header.Get("Location"))
}

func TestRoutes_PublicCatalog(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.accounts.On("PublicDesigner", mock.Anything, "d1").
		Return(&domain.Account{SubjectID: "d1", FullName: "Ana", Phone: "secret", Views: 7}, nil)
	s.projects.On("ListPublished", mock.Anything, 20, 0).Return([]domain.Project{}, nil)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/designers/d1", nil), nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Ana", data["fullName"])
	assert.NotContains(t, data, "phone")

	resp = s.do(t, httptest.NewRequest(nethttp.MethodGet, "/projects", nil), nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRoutes_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(nethttp.MethodGet, "/health/live", nil), nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = s.do(t, httptest.NewRequest(nethttp.MethodGet, "/health/ready", nil), nil)
	assert.Equal(t, nethttp.StatusServiceUnavailable, resp.StatusCode)
	details := decode(t, resp)["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "down", details["redis"])

	resp = s.do(t, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil), nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := new(strings.Builder)
	_, err := io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "route_gate_decisions_total")
}

func errNotFound() error {
	return fiber.NewError(nethttp.StatusNotFound, "project not found")
}
