package user

import (
	"context"
	"testing"

	"pulsefolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	updates map[string]bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
		updates: map[string]bson.M{},
	}
}

func (f *fakeRepo) Create(u *models.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}
func (f *fakeRepo) GetByID(id string) (*models.User, error)          { return f.byID[id], nil }
func (f *fakeRepo) GetByEmail(email string) (*models.User, error)    { return f.byEmail[email], nil }
func (f *fakeRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return f.byID[id], nil
}
func (f *fakeRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeRepo) UpdateSetDocument(id string, doc bson.M) error {
	f.updates[id] = doc
	if u, ok := f.byID[id]; ok {
		if role, ok := doc["role"].(models.Role); ok {
			u.Role = role
		}
		if hash, ok := doc["passwordHash"].(string); ok {
			u.PasswordHash = hash
		}
	}
	return nil
}
func (f *fakeRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}
func (f *fakeRepo) GetRole(id string) (models.Role, error) { return f.byID[id].Role, nil }

type fakeSessions struct {
	created     []string
	deleted     []string
	roleChanges []string
}

func (f *fakeSessions) Create(_ context.Context, sessionID string, user *models.User, _ string) (*models.Session, error) {
	f.created = append(f.created, sessionID)
	return &models.Session{ID: sessionID, UserID: user.ID}, nil
}
func (f *fakeSessions) Delete(_ context.Context, sessionID, _ string) error {
	f.deleted = append(f.deleted, sessionID)
	return nil
}
func (f *fakeSessions) NotifyRoleChanged(userID string) {
	f.roleChanges = append(f.roleChanges, userID)
}

func newService() (*DefaultUserService, *fakeRepo, *fakeSessions) {
	repo := newFakeRepo()
	sessions := &fakeSessions{}
	return &DefaultUserService{Repo: repo, Sessions: sessions}, repo, sessions
}

func TestRegisterUser(t *testing.T) {
	svc, repo, sessions := newService()

	resp, err := svc.RegisterUser(RegistrationInput{
		Email:             "Jordan@Example.com",
		Password:          "correct-horse",
		InvestmentBracket: models.Bracket10KTo50K,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, "jordan@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash, "credentials must never leave the service")
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, sessions.created, 1)

	stored := repo.byEmail["jordan@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "first-password"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "second-password"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterUserRejectsWeakInput(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.RegisterUser(RegistrationInput{Email: "not-an-email", Password: "long-enough"})
	assert.Error(t, err)

	_, err = svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "short"})
	assert.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, err := svc.AuthenticateUser("a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.SessionID)
}

func TestAuthenticateUserBadCredentials(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.AuthenticateUser("a@b.com", "wrong-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email produces the same error as a wrong password.
	_, err = svc.AuthenticateUser("nobody@b.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutDeletesSession(t *testing.T) {
	svc, _, sessions := newService()

	require.NoError(t, svc.SignOut("s1", "u1"))
	assert.Equal(t, []string{"s1"}, sessions.deleted)
}

func TestUpdateUserRoleNotifiesSessions(t *testing.T) {
	svc, repo, sessions := newService()
	resp, err := svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(resp.User.ID, models.RoleAnalyst)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAnalyst, updated.Role)
	assert.Equal(t, []string{resp.User.ID}, sessions.roleChanges)
	assert.Equal(t, models.RoleAnalyst, repo.byID[resp.User.ID].Role)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	svc, _, sessions := newService()

	_, err := svc.UpdateUserRole("u1", models.Role("owner"))
	assert.Error(t, err)
	assert.Empty(t, sessions.roleChanges)
}

func TestUpdateUserPassword(t *testing.T) {
	svc, _, _ := newService()
	resp, err := svc.RegisterUser(RegistrationInput{Email: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	err = svc.UpdateUserPassword(resp.User.ID, "wrong-horse", "new-password-1")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = svc.UpdateUserPassword(resp.User.ID, "correct-horse", "new-password-1")
	require.NoError(t, err)

	_, err = svc.AuthenticateUser("a@b.com", "new-password-1")
	assert.NoError(t, err)
}
