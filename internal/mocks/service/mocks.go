// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"minishop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new mock and registers expectation checks as test cleanup.
func NewMockPasswordHasher(t mockConstructorTestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a new mock and registers expectation checks as test cleanup.
func NewMockTokenService(t mockConstructorTestingT) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(userID uuid.UUID, username string, purpose service.TokenPurpose) (string, error) {
	args := m.Called(userID, username, purpose)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string, purpose service.TokenPurpose) (*service.Claims, error) {
	args := m.Called(tokenString, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockMailer is a mock implementation of service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a new mock and registers expectation checks as test cleanup.
func NewMockMailer(t mockConstructorTestingT) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, recipient, username, token string) error {
	return m.Called(ctx, recipient, username, token).Error(0)
}

// MockImageStore is a mock implementation of service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a new mock and registers expectation checks as test cleanup.
func NewMockImageStore(t mockConstructorTestingT) *MockImageStore {
	m := &MockImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStore) Save(ctx context.Context, originalFilename string, content []byte) (string, error) {
	args := m.Called(ctx, originalFilename, content)

	return args.String(0), args.Error(1)
}

func (m *MockImageStore) URL(filename string) string {
	return m.Called(filename).String(0)
}
