package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/radixtech/quotehub/internal/auth/domain"
	"github.com/radixtech/quotehub/internal/auth/repository"
	"github.com/radixtech/quotehub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{JWTSecret: "test-secret"},
		Node:   node,
		Repo:   repository.Provide(),
	})
	return svc, db
}

func registerApproved(t *testing.T, svc domain.Service, db *gorm.DB, name, email string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "hunter2!",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", user.ID).Update("is_approved", true).Error)
	user.IsApproved = true
	return user
}

func TestRegister_DefaultsToPendingUser(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Jane Roe",
		Email:    "Jane@Example.COM",
		Password: "hunter2!",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.IsApproved)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEqual(t, "hunter2!", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "B", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	registerApproved(t, svc, db, "Jane Roe", "jane@x.com")

	token, user, err := svc.Login(ctx, domain.LoginRequest{Email: "jane@x.com", Password: "hunter2!"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Jane Roe", user.Name)

	resolved, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := newTestService(t)
	registerApproved(t, svc, db, "Jane Roe", "jane@x.com")

	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "jane@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@x.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_PendingApproval(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "Jane", Email: "jane@x.com", Password: "pw"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, domain.LoginRequest{Email: "jane@x.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrPendingApproval)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestCreateUser_AdminCreatedIsApproved(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Name:     "Omar Khan",
		Email:    "omar@x.com",
		Password: "pw",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, user.IsApproved)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Name:     "Omar",
		Email:    "omar@x.com",
		Password: "pw",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateUser_SelfDemoteRefused(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Root", Email: "root@x.com", Password: "pw", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, admin.ID, admin.ID, domain.UpdateUserRequest{Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrSelfDemote)
}

func TestUpdateUser_ChangesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Root", Email: "root@x.com", Password: "pw", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	target, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Omar", Email: "omar@x.com", Password: "pw",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, admin.ID, target.ID, domain.UpdateUserRequest{
		Name: "Omar Khan",
		Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar Khan", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestDeleteUser_SelfDeleteRefused(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Root", Email: "root@x.com", Password: "pw", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), domain.ErrSelfDelete)
}

func TestApproveUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{Name: "Jane", Email: "jane@x.com", Password: "pw"})
	require.NoError(t, err)

	approved, err := svc.ApproveUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, _, err = svc.Login(ctx, domain.LoginRequest{Email: "jane@x.com", Password: "pw"})
	assert.NoError(t, err)
}
