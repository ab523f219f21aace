package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domuser "example.com/product-catalog/internal/domain/user"
)

type mockUserRepository struct {
	usersByEmail map[string]*domuser.User
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{usersByEmail: make(map[string]*domuser.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	if _, ok := m.usersByEmail[u.Email]; ok {
		return nil, domuser.ErrEmailAlreadyUsed
	}
	m.nextID++
	cloned := *u
	cloned.ID = m.nextID
	m.usersByEmail[u.Email] = &cloned
	result := cloned
	return &result, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == id {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		cloned := *u
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domuser.User, error) {
	var users []*domuser.User
	for _, u := range m.usersByEmail {
		cloned := *u
		users = append(users, &cloned)
	}
	return users, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	for email, u := range m.usersByEmail {
		if u.ID == id {
			delete(m.usersByEmail, email)
			return nil
		}
	}
	return domuser.ErrUserNotFound
}

type plainPasswordService struct{}

func (plainPasswordService) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswordService) Compare(hash string, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type staticTokenService struct{}

func (staticTokenService) GenerateToken(u *domuser.User) (string, error) {
	return "token-for-" + u.Email, nil
}

func (staticTokenService) ParseToken(token string) (*Claims, error) {
	return nil, errors.New("not implemented")
}

func newTestService() (*Service, *mockUserRepository) {
	repo := newMockUserRepository()
	return NewService(repo, plainPasswordService{}, staticTokenService{}), repo
}

func TestRegister_CreatesCustomer(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	require.Equal(t, domuser.RoleCodeCustomer, u.Role)
	require.Equal(t, "ada@example.com", u.Email, "email is normalized")
	require.NotContains(t, repo.usersByEmail, "Ada@Example.com")
	require.Contains(t, repo.usersByEmail, "ada@example.com")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "Other", Email: "ADA@example.com", Password: "secret2"})
	require.ErrorIs(t, err, domuser.ErrEmailAlreadyUsed)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada"})

	require.ErrorIs(t, err, domuser.ErrInvalidCredential)
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret1"})

	require.NoError(t, err)
	require.Equal(t, "token-for-ada@example.com", result.Token)
	require.Equal(t, "ada@example.com", result.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})

	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})

	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}
