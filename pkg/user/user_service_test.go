package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/jwt"
)

type mockUserRepository struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (m *mockUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	m.byID[user.ID.String()] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	m.byID[user.ID.String()] = user
	m.byEmail[user.Email] = user
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func newTestService() (UserService, *mockUserRepository, *[]sentMail) {
	repo := newMockUserRepository()
	var outbox []sentMail
	svc := NewUserService(repo, jwt.NewJWTServiceWithKey("test-secret"),
		func(to, subject, body string) error {
			outbox = append(outbox, sentMail{to, subject, body})
			return nil
		},
		func(name, token string) string {
			return "verify " + name + " with " + token
		})
	return svc, repo, &outbox
}

func seedUser(repo *mockUserRepository, email, password string, verified bool) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:         uuid.New(),
		Name:       "Dana",
		Email:      email,
		Password:   string(hashed),
		Role:       domain.RoleUser,
		IsVerified: verified,
	}
	repo.byID[user.ID.String()] = user
	repo.byEmail[user.Email] = user
	return user
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService()

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "dana@example.com", res.Email)

	stored := repo.byEmail["dana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.False(t, stored.IsVerified)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "dana@example.com", "supersecret", true)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Other",
		Email:    "dana@example.com",
		Password: "different",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestService()
	user := seedUser(repo, "dana@example.com", "supersecret", true)

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "dana@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)

	gotID, gotRole, err := jwt.NewJWTServiceWithKey("test-secret").GetUserIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), gotID)
	assert.Equal(t, domain.RoleUser, gotRole)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "dana@example.com", "supersecret", true)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "dana@example.com", "supersecret", false)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "dana@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotVerified)
}

func TestMe(t *testing.T) {
	svc, repo, _ := newTestService()
	user := seedUser(repo, "dana@example.com", "supersecret", true)

	res, err := svc.Me(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), res.ID)
	assert.Equal(t, "dana@example.com", res.Email)
	assert.True(t, res.IsVerified)

	_, err = svc.Me(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendVerificationEmail(t *testing.T) {
	svc, repo, outbox := newTestService()
	seedUser(repo, "dana@example.com", "supersecret", false)

	err := svc.SendVerificationEmail(context.Background(), domain.SendVerifyRequest{
		Email: "dana@example.com",
	})
	require.NoError(t, err)

	require.Len(t, *outbox, 1)
	assert.Equal(t, "dana@example.com", (*outbox)[0].to)
	assert.Contains(t, (*outbox)[0].body, "verify Dana with ")
}

func TestSendVerificationEmail_AlreadyVerified(t *testing.T) {
	svc, repo, outbox := newTestService()
	seedUser(repo, "dana@example.com", "supersecret", true)

	err := svc.SendVerificationEmail(context.Background(), domain.SendVerifyRequest{
		Email: "dana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	assert.Empty(t, *outbox)
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	user := seedUser(repo, "dana@example.com", "supersecret", false)

	token, err := jwt.NewJWTServiceWithKey("test-secret").
		GenerateVerificationToken(map[string]any{"email": user.Email}, verificationTokenTTL)
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.True(t, repo.byEmail["dana@example.com"].IsVerified)

	// Second verification with the same token is rejected.
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), domain.ErrAlreadyVerified)
}

func TestVerifyEmail_BadToken(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.VerifyEmail(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
