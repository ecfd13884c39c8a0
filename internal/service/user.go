package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goldenorders/internal/entity"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"

	"github.com/go-playground/validator/v10"
)

// AccessPolicy holds the account rules shared by sign-up and the user
// directory.
type AccessPolicy struct {
	CorporateDomain string
	RootAdminEmail  string
	BcryptCost      int
	MinPasswordLen  int
}

func (p AccessPolicy) isCorporate(email string) bool {
	return strings.HasSuffix(email, "@"+strings.ToLower(p.CorporateDomain))
}

func (p AccessPolicy) isRootAdmin(email string) bool {
	return email == strings.ToLower(p.RootAdminEmail)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserService struct {
	userRepo  UserRepository
	txManager transaction.Manager
	validate  *validator.Validate
	policy    AccessPolicy
	logger    logger.Logger
}

func NewUserService(
	userRepo UserRepository,
	txManager transaction.Manager,
	validate *validator.Validate,
	policy AccessPolicy,
	logger logger.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		txManager: txManager,
		validate:  validate,
		policy:    policy,
		logger:    logger,
	}
}

func (us *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	const op = "service.ListUsers"

	users, err := us.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (us *UserService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	const op = "service.CreateUser"
	log := us.logger.Ctx(ctx)

	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)

	if err := us.validateUser(user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created *entity.User
	err := us.txManager.ExecuteInTransaction(ctx, "CreateUser", func(tx postgres.QueryExecuter) error {
		var err error
		created, err = us.userRepo.Create(ctx, tx, user)
		if err != nil {
			return transaction.HandleError("CreateUser", "create user", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrConflictingData) {
			return nil, fmt.Errorf("%s: e-mail já cadastrado: %w", op, entity.ErrConflictingData)
		}
		return nil, err
	}

	log.LogAttrs(ctx, logger.InfoLevel, "user created",
		logger.String("op", op),
		logger.String("email", created.Email),
		logger.String("role", string(created.Role)),
	)

	return created, nil
}

// UpdateUser changes name and role. The e-mail identifies the user and never
// changes; the root admin cannot lose the admin role.
func (us *UserService) UpdateUser(ctx context.Context, email string, user *entity.User) (*entity.User, error) {
	const op = "service.UpdateUser"

	user.Email = normalizeEmail(email)
	user.Name = strings.TrimSpace(user.Name)

	if err := us.validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, entity.ErrInvalidData, err)
	}
	if us.policy.isRootAdmin(user.Email) && user.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrProtectedAccount)
	}

	var updated *entity.User
	err := us.txManager.ExecuteInTransaction(ctx, "UpdateUser", func(tx postgres.QueryExecuter) error {
		var err error
		updated, err = us.userRepo.Update(ctx, tx, user)
		if err != nil {
			return transaction.HandleError("UpdateUser", "update user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (us *UserService) DeleteUser(ctx context.Context, caller entity.Authenticated, email string) error {
	const op = "service.DeleteUser"
	log := us.logger.Ctx(ctx)

	email = normalizeEmail(email)
	switch {
	case email == normalizeEmail(caller.User.Email):
		return fmt.Errorf("%s: %w", op, entity.ErrSelfDeletion)
	case us.policy.isRootAdmin(email):
		return fmt.Errorf("%s: %w", op, entity.ErrProtectedAccount)
	}

	err := us.txManager.ExecuteInTransaction(ctx, "DeleteUser", func(tx postgres.QueryExecuter) error {
		if err := us.userRepo.Delete(ctx, tx, email); err != nil {
			return transaction.HandleError("DeleteUser", "delete user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.LogAttrs(ctx, logger.InfoLevel, "user deleted",
		logger.String("op", op),
		logger.String("email", email),
		logger.String("caller", caller.User.Email),
	)
	return nil
}

func (us *UserService) validateUser(user *entity.User) error {
	var errs []error

	if err := us.validate.Struct(user); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", entity.ErrInvalidData, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, invalid(fe.Field(), describe(fe)))
		}
	}

	if user.Email != "" && !us.policy.isCorporate(user.Email) {
		errs = append(errs, fmt.Errorf("email: %w: %w", entity.ErrCorporateDomain, entity.ErrInvalidData))
	}

	return errors.Join(errs...)
}
