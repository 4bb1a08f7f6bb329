package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swapyard/pkg/users"
)

type mockOTPRepository struct {
	mock.Mock
}

func (m *mockOTPRepository) CreateOTP(ctx context.Context, email, code string, expiresAt time.Time) (OTP, error) {
	args := m.Called(ctx, email, code, expiresAt)
	return args.Get(0).(OTP), args.Error(1)
}

func (m *mockOTPRepository) GetOTPByEmail(ctx context.Context, email string) (OTP, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(OTP), args.Error(1)
}

func (m *mockOTPRepository) MarkOTPAsVerified(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOTPRepository) DeleteExpiredOTPs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOTPRepository) CountOTPsInLastHour(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, u, passwordHash)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, u users.User) (users.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByUUID(ctx context.Context, uuid string) (users.User, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) ReviveUserByEmail(ctx context.Context, email string, u users.User, passwordHash string) (users.User, error) {
	args := m.Called(ctx, email, u, passwordHash)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]users.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]users.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) ListAllUsers(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *mockUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockUserRepository) SetVerified(ctx context.Context, uuid string, verified bool) error {
	args := m.Called(ctx, uuid, verified)
	return args.Error(0)
}

func (m *mockUserRepository) SetPremium(ctx context.Context, uuid, plan string) error {
	args := m.Called(ctx, uuid, plan)
	return args.Error(0)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	args := m.Called(subject, toEmail, plainTextContent, htmlContent)
	return args.Error(0)
}

func TestGenerateAndSendOTP_RateLimited(t *testing.T) {
	repo := new(mockOTPRepository)
	userRepo := new(mockUserRepository)
	es := new(mockEmailService)
	svc := NewOTPService(repo, userRepo, es)

	repo.On("CountOTPsInLastHour", mock.Anything, "a@example.com").Return(3, nil)

	err := svc.GenerateAndSendOTP(context.Background(), "a@example.com")
	require.Error(t, err)
	repo.AssertNotCalled(t, "CreateOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	repo := new(mockOTPRepository)
	svc := NewOTPService(repo, new(mockUserRepository), new(mockEmailService))

	repo.On("GetOTPByEmail", mock.Anything, "a@example.com").Return(OTP{
		ID: 1, Email: "a@example.com", Code: "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)

	ok, err := svc.VerifyOTP(context.Background(), "a@example.com", "000000")
	require.Error(t, err)
	require.False(t, ok)
}

func TestVerifyOTP_Expired(t *testing.T) {
	repo := new(mockOTPRepository)
	svc := NewOTPService(repo, new(mockUserRepository), new(mockEmailService))

	repo.On("GetOTPByEmail", mock.Anything, "a@example.com").Return(OTP{
		ID: 1, Email: "a@example.com", Code: "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	ok, err := svc.VerifyOTP(context.Background(), "a@example.com", "123456")
	require.Error(t, err)
	require.False(t, ok)
}

func TestVerifyOTP_SuccessMarksUserVerified(t *testing.T) {
	repo := new(mockOTPRepository)
	userRepo := new(mockUserRepository)
	svc := NewOTPService(repo, userRepo, new(mockEmailService))

	repo.On("GetOTPByEmail", mock.Anything, "a@example.com").Return(OTP{
		ID: 7, Email: "a@example.com", Code: "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)
	repo.On("MarkOTPAsVerified", mock.Anything, int64(7)).Return(nil)
	userRepo.On("GetUserByEmail", mock.Anything, "a@example.com").
		Return(users.User{UUID: "u1", Email: "a@example.com"}, nil)
	userRepo.On("SetVerified", mock.Anything, "u1", true).Return(nil)

	ok, err := svc.VerifyOTP(context.Background(), "a@example.com", "123456")
	require.NoError(t, err)
	require.True(t, ok)
	userRepo.AssertExpectations(t)
}
