package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pulsefolio/models"
	"pulsefolio/services/access"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[sessionID], nil
}

func (f *fakeStore) Touch(_ context.Context, _ *models.Session) {}

type fakeResolver struct {
	roles map[string]models.Role
	err   error
}

func (f *fakeResolver) GetRole(userID string) (models.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", errors.New("user not found")
	}
	return role, nil
}

// signIn mints a token and binds the matching session in the store.
func signIn(t *testing.T, store *fakeStore, userID, sessionID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, userID+"@example.com", sessionID, utils.TokenTTL)
	require.NoError(t, err)
	store.mu.Lock()
	store.sessions[sessionID] = &models.Session{
		ID:        sessionID,
		UserID:    userID,
		TokenHash: utils.HashToken(token),
	}
	store.mu.Unlock()
	return token
}

func protectedRouter(store *fakeStore, resolver *fakeResolver, required models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(store))
	r.GET("/protected", RequireRole(access.NewGate(resolver), required), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeDecision(t *testing.T, w *httptest.ResponseRecorder) access.Decision {
	t.Helper()
	var d access.Decision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	return d
}

func TestRequireRoleAnonymousGets401(t *testing.T) {
	r := protectedRouter(newFakeStore(), &fakeResolver{}, models.RoleUser)

	w := doRequest(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	d := decodeDecision(t, w)
	assert.Equal(t, access.StateDeniedUnauthenticated, d.State)
	assert.Equal(t, access.LoginPath, d.Redirect)
	assert.Equal(t, "/protected", d.From)
}

func TestRequireRoleGrantedPassesThrough(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleUser}}, models.RoleUser)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleInsufficientGets403(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleUser}}, models.RoleAdmin)

	w := doRequest(r, token)
	require.Equal(t, http.StatusForbidden, w.Code)

	d := decodeDecision(t, w)
	assert.Equal(t, access.StateDeniedInsufficientRole, d.State)
	assert.Equal(t, access.DashboardPath, d.Redirect)
}

func TestRequireRoleAdminMeetsAnalyst(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleAdmin}}, models.RoleAnalyst)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleMissingSessionGets401(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	store.mu.Lock()
	delete(store.sessions, "s1")
	store.mu.Unlock()

	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleUser}}, models.RoleUser)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleTokenHashMismatchGets401(t *testing.T) {
	store := newFakeStore()
	signIn(t, store, "u1", "s1")
	// A second token for the same session does not match the stored hash.
	stale, err := utils.GenerateToken("u1", "u1@example.com", "s1", utils.TokenTTL)
	require.NoError(t, err)
	store.mu.Lock()
	store.sessions["s1"].TokenHash = "rotated"
	store.mu.Unlock()

	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleUser}}, models.RoleUser)

	w := doRequest(r, stale)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleStoreFailureGets503(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	store.mu.Lock()
	store.err = errors.New("redis unavailable")
	store.mu.Unlock()

	r := protectedRouter(store, &fakeResolver{roles: map[string]models.Role{"u1": models.RoleUser}}, models.RoleUser)

	w := doRequest(r, token)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	d := decodeDecision(t, w)
	assert.Equal(t, access.StateUnknown, d.State)
}

func TestRequireRoleResolverFailureGets503(t *testing.T) {
	store := newFakeStore()
	token := signIn(t, store, "u1", "s1")
	r := protectedRouter(store, &fakeResolver{err: errors.New("mongo unavailable")}, models.RoleUser)

	w := doRequest(r, token)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	d := decodeDecision(t, w)
	assert.Equal(t, access.StateUnknown, d.State)
	assert.False(t, d.Granted())
}
