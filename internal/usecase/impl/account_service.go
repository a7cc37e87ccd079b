// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "minishop/internal/delivery/context"
	"minishop/internal/domain/entity"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/repository"
	"minishop/internal/domain/service"
	"minishop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: the user row and
// its storefront are created inside one transaction, seeded with the username
// as business name. The verification email goes out after the commit so a
// mail outage never rolls back the account.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsVerified:   false,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		newBusiness := &entity.Business{
			BusinessName: newUser.Username,
			City:         entity.DefaultLocation,
			Region:       entity.DefaultLocation,
			Country:      entity.DefaultLocation,
			Logo:         entity.DefaultLogoFile,
			OwnerID:      newUser.ID,
		}

		if err := repoFactory.NewBusinessRepository().Create(ctx, newBusiness); err != nil {
			return errors.Wrap(err, "failed to create business during registration")
		}

		newUser.Business = newBusiness

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	emailSent := srv.sendVerificationEmail(ctx, newUser)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID), slog.Bool("emailSent", emailSent))

	return &usecase.RegisterOutput{User: newUser, EmailSent: emailSent}, nil
}

// sendVerificationEmail issues a short-lived verification token and mails it.
// Failures are logged but never fail the registration itself.
func (srv *accountService) sendVerificationEmail(ctx context.Context, user *entity.User) bool {
	token, err := srv.tokenService.Issue(user.ID, user.Username, service.TokenPurposeVerify)
	if err != nil {
		srv.log(ctx).Error("Failed to issue verification token", slog.Any("userID", user.ID), slog.Any("error", err))

		return false
	}

	if err := srv.mailer.SendVerificationEmail(ctx, user.Email, user.Username, token); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.Any("userID", user.ID), slog.Any("error", err))

		return false
	}

	return true
}

// VerifyEmail consumes a verification token and flips the account to verified.
// The flip happens at most once; a token for an already-verified account is rejected.
func (srv *accountService) VerifyEmail(ctx context.Context, token string) (*usecase.VerifyEmailOutput, error) {
	claims, err := srv.tokenService.Validate(token, service.TokenPurposeVerify)
	if err != nil {
		srv.log(ctx).Warn("Verification token rejected", slog.Any("error", err))

		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no account matches the verification token")
		}

		return nil, errors.Wrap(err, "failed to load user for verification")
	}

	if user.IsVerified {
		srv.log(ctx).Warn("Verification token replayed for verified account", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("account is already verified")
	}

	user.IsVerified = true
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to mark user as verified")
	}

	srv.log(ctx).Info("Account verified", slog.Any("userID", user.ID))

	return &usecase.VerifyEmailOutput{User: user}, nil
}

// Login checks the credentials and issues a session token.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a bad password so login probes cannot enumerate usernames.
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown username")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch during login", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	accessToken, err := srv.tokenService.Issue(user.ID, user.Username, service.TokenPurposeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{AccessToken: accessToken, User: user}, nil
}

// GetProfile loads the account together with its business.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}
