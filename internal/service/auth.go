package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"

	"golang.org/x/crypto/bcrypt"
)

const (
	_signInSuccess = "success"
	_signInDenied  = "denied"
	_signInError   = "error"
)

type SignInResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      entity.User `json:"user"`
}

type AuthService struct {
	userRepo       UserRepository
	credentialRepo CredentialRepository
	txManager      transaction.Manager
	issuer         TokenIssuer
	sessions       SessionStore
	policy         AccessPolicy
	logger         logger.Logger
	metrics        metric.Auth
	now            func() time.Time
}

func NewAuthService(
	userRepo UserRepository,
	credentialRepo CredentialRepository,
	txManager transaction.Manager,
	issuer TokenIssuer,
	sessions SessionStore,
	policy AccessPolicy,
	logger logger.Logger,
	metrics metric.Auth,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
		txManager:      txManager,
		issuer:         issuer,
		sessions:       sessions,
		policy:         policy,
		logger:         logger,
		metrics:        metrics,
		now:            time.Now,
	}
}

// SignUp creates the password credential for a corporate e-mail.
func (as *AuthService) SignUp(ctx context.Context, email, password string) error {
	const op = "service.SignUp"

	email = normalizeEmail(email)
	if !as.policy.isCorporate(email) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrCorporateDomain, entity.ErrInvalidData)
	}
	if len(password) < as.policy.MinPasswordLen {
		return fmt.Errorf("%s: senha deve ter ao menos %d caracteres: %w",
			op, as.policy.MinPasswordLen, entity.ErrInvalidData)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.policy.BcryptCost)
	if err != nil {
		return fmt.Errorf("%s: hash password: %w", op, err)
	}

	err = as.txManager.ExecuteInTransaction(ctx, "SignUp", func(tx postgres.QueryExecuter) error {
		err := as.credentialRepo.Create(ctx, tx, &entity.Credential{Email: email, PasswordHash: hash})
		if err != nil {
			return transaction.HandleError("SignUp", "create credential", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrConflictingData) {
			return fmt.Errorf("%s: e-mail já cadastrado: %w", op, entity.ErrConflictingData)
		}
		return err
	}

	as.logger.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "credential created",
		logger.String("op", op),
		logger.String("email", email),
	)
	return nil
}

// SignIn verifies the password, resolves the role and opens a session.
func (as *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	const op = "service.SignIn"
	log := as.logger.Ctx(ctx)

	email = normalizeEmail(email)

	cred, err := as.credentialRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrDataNotFound) {
			as.metrics.SignIn(_signInDenied)
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
		}
		as.metrics.SignIn(_signInError)
		return nil, fmt.Errorf("%s: get credential: %w", op, err)
	}

	if err = bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)); err != nil {
		as.metrics.SignIn(_signInDenied)
		log.LogAttrs(ctx, logger.WarnLevel, "sign-in denied",
			logger.String("op", op),
			logger.String("email", email),
		)
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	user, err := as.resolveUser(ctx, email)
	if err != nil {
		as.metrics.SignIn(_signInError)
		return nil, fmt.Errorf("%s: resolve role: %w", op, err)
	}

	now := as.now().UTC()
	if err = as.userRepo.TouchLastLogin(ctx, email, now); err != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "last login not recorded",
			logger.String("op", op),
			logger.String("email", email),
			logger.Err(err),
		)
	} else {
		user.LastLogin = &now
	}

	issued, err := as.issuer.Issue(user.Email, user.Name, string(user.Role))
	if err != nil {
		as.metrics.SignIn(_signInError)
		return nil, fmt.Errorf("%s: issue token: %w", op, err)
	}

	if err = as.sessions.Register(ctx, issued.ID, user.Email, as.issuer.TTL()); err != nil {
		as.metrics.SignIn(_signInError)
		return nil, fmt.Errorf("%s: register session: %w", op, err)
	}

	as.metrics.SignIn(_signInSuccess)
	log.LogAttrs(ctx, logger.InfoLevel, "user signed in",
		logger.String("op", op),
		logger.String("email", user.Email),
		logger.String("role", string(user.Role)),
	)

	return &SignInResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, User: *user}, nil
}

// resolveUser reads the directory record. Without one the root admin is an
// admin and everyone else a plain user.
func (as *AuthService) resolveUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := as.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entity.ErrDataNotFound) {
		return nil, err
	}

	role := entity.RoleUser
	if as.policy.isRootAdmin(email) {
		role = entity.RoleAdmin
	}
	name, _, _ := strings.Cut(email, "@")

	return &entity.User{Email: email, Name: name, Role: role}, nil
}

func (as *AuthService) SignOut(ctx context.Context, caller entity.Authenticated) error {
	const op = "service.SignOut"

	if err := as.sessions.Revoke(ctx, caller.TokenID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	as.logger.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "user signed out",
		logger.String("op", op),
		logger.String("email", caller.User.Email),
	)
	return nil
}

// Session resolves a bearer token. Anything short of a valid, unrevoked token
// is Anonymous.
func (as *AuthService) Session(ctx context.Context, raw string) entity.Session {
	const op = "service.Session"

	if raw == "" {
		return entity.Anonymous{}
	}

	claims, err := as.issuer.Parse(raw)
	if err != nil {
		return entity.Anonymous{}
	}

	email, active, err := as.sessions.Active(ctx, claims.ID)
	if err != nil {
		as.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "session lookup failed",
			logger.String("op", op),
			logger.Err(err),
		)
		return entity.Anonymous{}
	}
	if !active || email != claims.Subject {
		return entity.Anonymous{}
	}

	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return entity.Anonymous{}
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return entity.Authenticated{
		User:      entity.User{Email: claims.Subject, Name: claims.Name, Role: role},
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}
}
