package impl

import (
	"context"
	"testing"
	"time"

	"minishop/internal/domain/entity"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/repository"
	"minishop/internal/domain/service"
	mockRepo "minishop/internal/mocks/repository"
	mockSvc "minishop/internal/mocks/service"
	"minishop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mailer       *mockSvc.MockMailer
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	mailer := mockSvc.NewMockMailer(t)

	svc := NewAccountService(AccountServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Mailer:       mailer,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:      svc,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		mailer:       mailer,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}
	userID := uuid.New()

	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)

	fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			factory := mockRepo.NewMockRepositoryFactory(t)
			txUserRepo := mockRepo.NewMockUserRepository(t)
			txBusinessRepo := mockRepo.NewMockBusinessRepository(t)

			factory.On("NewUserRepository").Return(txUserRepo)
			factory.On("NewBusinessRepository").Return(txBusinessRepo)

			txUserRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
				Run(func(args mock.Arguments) {
					user := args.Get(1).(*entity.User)
					user.ID = userID
				}).
				Return(nil)

			txBusinessRepo.On("Create", ctx, mock.AnythingOfType("*entity.Business")).
				Run(func(args mock.Arguments) {
					business := args.Get(1).(*entity.Business)

					// The storefront is seeded from the username and the defaults.
					assert.Equal(t, "alice", business.BusinessName)
					assert.Equal(t, userID, business.OwnerID)
					assert.Equal(t, entity.DefaultLocation, business.City)
					assert.Equal(t, entity.DefaultLocation, business.Region)
					assert.Equal(t, entity.DefaultLocation, business.Country)
					assert.Equal(t, entity.DefaultLogoFile, business.Logo)
				}).
				Return(nil)

			require.NoError(t, fn(factory))
		}).
		Return(nil)

	fixtures.tokenService.On("Issue", userID, "alice", service.TokenPurposeVerify).
		Return("verify_token", nil)
	fixtures.mailer.On("SendVerificationEmail", ctx, input.Email, "alice", "verify_token").
		Return(nil)

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	assert.True(t, output.EmailSent)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.False(t, output.User.IsVerified)
	require.NotNil(t, output.User.Business)
	assert.Equal(t, "alice", output.User.Business.BusinessName)
}

func TestAccountService_Register_MailFailureDoesNotFailRegistration(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "Password123!"}

	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(nil)
	fixtures.tokenService.On("Issue", mock.Anything, "bob", service.TokenPurposeVerify).
		Return("verify_token", nil)
	fixtures.mailer.On("SendVerificationEmail", ctx, input.Email, "bob", "verify_token").
		Return(errors.New("smtp connection refused"))

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	assert.False(t, output.EmailSent)
}

func TestAccountService_Register_DuplicateUser(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "Password123!"}

	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists"))

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAccountService_VerifyEmail_FlipsFlagOnce(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Username: "alice", Purpose: service.TokenPurposeVerify}
	user := &entity.User{ID: userID, Username: "alice", IsVerified: false}

	fixtures.tokenService.On("Validate", "verify_token", service.TokenPurposeVerify).
		Return(claims, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	fixtures.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			assert.True(t, args.Get(1).(*entity.User).IsVerified)
		}).
		Return(nil)

	output, err := fixtures.service.VerifyEmail(ctx, "verify_token")

	require.NoError(t, err)
	assert.True(t, output.User.IsVerified)
}

func TestAccountService_VerifyEmail_AlreadyVerified(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Username: "alice", Purpose: service.TokenPurposeVerify}

	fixtures.tokenService.On("Validate", "verify_token", service.TokenPurposeVerify).
		Return(claims, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice", IsVerified: true}, nil)

	output, err := fixtures.service.VerifyEmail(ctx, "verify_token")

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestAccountService_VerifyEmail_ExpiredToken(t *testing.T) {
	fixtures := createTestAccountService(t)

	fixtures.tokenService.On("Validate", "stale_token", service.TokenPurposeVerify).
		Return(nil, domainerrors.ErrTokenExpired.WrapMessage("token past its expiry"))

	output, err := fixtures.service.VerifyEmail(context.Background(), "stale_token")

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAccountService_VerifyEmail_UserGone(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Username: "ghost", Purpose: service.TokenPurposeVerify}

	fixtures.tokenService.On("Validate", "verify_token", service.TokenPurposeVerify).
		Return(claims, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.VerifyEmail(ctx, "verify_token")

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAccountService_Login_Success(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "alice", PasswordHash: "hashed_password", JoinedAt: time.Now()}

	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	fixtures.hasher.On("Check", "Password123!", "hashed_password").Return(true)
	fixtures.tokenService.On("Issue", userID, "alice", service.TokenPurposeAccess).
		Return("access_token", nil)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "access_token", output.AccessToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "hashed_password"}

	fixtures.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	fixtures.hasher.On("Check", "WrongPassword", "hashed_password").Return(false)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "WrongPassword"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UnknownUsername(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()

	fixtures.userRepo.On("FindByUsername", ctx, "nobody").Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{Username: "nobody", Password: "whatever"})

	assert.Nil(t, output)
	require.Error(t, err)
	// Unknown username and wrong password are indistinguishable to the caller.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_GetProfile(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:       userID,
		Username: "alice",
		Business: &entity.Business{BusinessName: "alice", OwnerID: userID},
	}

	fixtures.userRepo.On("FindByID", ctx, userID).Return(user, nil)

	got, err := fixtures.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, got.Business)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	fixtures := createTestAccountService(t)

	ctx := context.Background()
	userID := uuid.New()

	fixtures.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	got, err := fixtures.service.GetProfile(ctx, userID)

	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
