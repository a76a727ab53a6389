// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"io"
	"time"

	"homestay/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockT interface {
	Cleanup(func())
	Errorf(format string, args ...any)
	FailNow()
	Logf(format string, args ...any)
}

func register[M interface {
	Test(mock.TestingT)
	AssertExpectations(mock.TestingT) bool
}](t mockT, m M) M {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockPasswordHasher is a mock of service.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates the mock and asserts its expectations on cleanup
func NewMockPasswordHasher(t mockT) *MockPasswordHasher {
	return register(t, &MockPasswordHasher{})
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) NeedsRehash(hash string) bool {
	return m.Called(hash).Bool(0)
}

// MockTokenService is a mock of service.TokenService
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates the mock and asserts its expectations on cleanup
func NewMockTokenService(t mockT) *MockTokenService {
	return register(t, &MockTokenService{})
}

func (m *MockTokenService) GenerateTokens(userID, userName string, roles []string) (string, string, error) {
	args := m.Called(userID, userName, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if v, ok := args.Get(0).(*service.Claims); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if v, ok := args.Get(0).(*service.Claims); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) AccessTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockEventPublisher is a mock of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates the mock and asserts its expectations on cleanup
func NewMockEventPublisher(t mockT) *MockEventPublisher {
	return register(t, &MockEventPublisher{})
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, event *service.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockPushNotifier is a mock of service.PushNotifier
type MockPushNotifier struct {
	mock.Mock
}

// NewMockPushNotifier creates the mock and asserts its expectations on cleanup
func NewMockPushNotifier(t mockT) *MockPushNotifier {
	return register(t, &MockPushNotifier{})
}

func (m *MockPushNotifier) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

func (m *MockPushNotifier) PushBatch(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	invalid, _ := args.Get(2).([]string)

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

// MockQRCodeService is a mock of service.QRCodeService
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates the mock and asserts its expectations on cleanup
func NewMockQRCodeService(t mockT) *MockQRCodeService {
	return register(t, &MockQRCodeService{})
}

func (m *MockQRCodeService) GenerateBookingQR(bookingID uuid.UUID) ([]byte, error) {
	args := m.Called(bookingID)
	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

func (m *MockQRCodeService) ParseBookingQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockImageStorage is a mock of service.ImageStorage
type MockImageStorage struct {
	mock.Mock
}

// NewMockImageStorage creates the mock and asserts its expectations on cleanup
func NewMockImageStorage(t mockT) *MockImageStorage {
	return register(t, &MockImageStorage{})
}

func (m *MockImageStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)

	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockImageStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	r, _ := args.Get(0).(io.ReadCloser)

	return r, args.String(1), args.Error(2)
}
