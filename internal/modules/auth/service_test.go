package auth

import (
	"context"
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, name, phone, avatarURL string) (*domain.User, error) {
	args := m.Called(ctx, id, name, phone, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Customer(t *testing.T) {
	users := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(users, jwt)
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	jwt.On("GenerateToken", int64(1), "customer").Return("tok", nil)

	user, token, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "supersecret",
		Role:     "customer",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Empty(t, user.PasswordHash)

	created := users.Calls[1].Arguments.Get(1).(*domain.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil)

	_, _, err := svc.Register(ctx, RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "supersecret", Role: "business_owner",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_AdminRoleRejected(t *testing.T) {
	svc := NewService(new(mockUserRepo), new(mockJWT))

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "supersecret", Role: "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(users, jwt)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	users.On("GetByEmail", ctx, "ana@example.com").Return(&domain.User{
		ID: 1, Email: "ana@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer,
	}, nil)
	jwt.On("GenerateToken", int64(1), "customer").Return("tok", nil)

	user, token, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "supersecret"})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	users.On("GetByEmail", ctx, "ana@example.com").Return(&domain.User{
		ID: 1, Email: "ana@example.com", PasswordHash: string(hash),
	}, nil)

	_, _, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWT))
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
