// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"minishop/internal/domain/entity"
	"minishop/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a new mock and registers expectation checks as test cleanup.
func NewMockUserRepository(t mockConstructorTestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockBusinessRepository is a mock implementation of repository.BusinessRepository.
type MockBusinessRepository struct {
	mock.Mock
}

// NewMockBusinessRepository creates a new mock and registers expectation checks as test cleanup.
func NewMockBusinessRepository(t mockConstructorTestingT) *MockBusinessRepository {
	m := &MockBusinessRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Business), args.Error(1)
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entity.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *entity.Business) error {
	return m.Called(ctx, business).Error(0)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository creates a new mock and registers expectation checks as test cleanup.
func NewMockProductRepository(t mockConstructorTestingT) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a new mock and registers expectation checks as test cleanup.
func NewMockTransactionManager(t mockConstructorTestingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a new mock and registers expectation checks as test cleanup.
func NewMockRepositoryFactory(t mockConstructorTestingT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) NewBusinessRepository() repository.BusinessRepository {
	return m.Called().Get(0).(repository.BusinessRepository)
}

func (m *MockRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return m.Called().Get(0).(repository.ProductRepository)
}
