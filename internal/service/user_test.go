package service_test

import (
	"context"
	"testing"
	"time"

	"goldenorders/internal/entity"
	mock_repository "goldenorders/internal/repository/mock"
	"goldenorders/internal/service"
	mock_logger "goldenorders/pkg/logger/mock"
	mock_transaction "goldenorders/pkg/storage/postgres/transaction/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const _rootAdmin = "admin@goldenpr.com.br"

var _policy = service.AccessPolicy{
	CorporateDomain: "goldenpr.com.br",
	RootAdminEmail:  _rootAdmin,
	BcryptCost:      bcrypt.MinCost,
	MinPasswordLen:  6,
}

type userMocks struct {
	userRepo  *mock_repository.MockUserRepository
	txManager *mock_transaction.MockManager
	logger    *mock_logger.MockLogger
}

func newUserService(t *testing.T) (*service.UserService, *userMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &userMocks{
		userRepo:  mock_repository.NewMockUserRepository(ctrl),
		txManager: mock_transaction.NewMockManager(ctrl),
		logger:    mock_logger.NewMockLogger(ctrl),
	}
	allowLogs(m.logger)

	return service.NewUserService(m.userRepo, m.txManager, newValidator(t), _policy, m.logger), m
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc     string
		user     *entity.User
		mocks    func(m *userMocks)
		expected error
	}{
		{
			desc: "Success",
			user: &entity.User{Email: "  Joao@GoldenPR.com.br ", Name: " João ", Role: entity.RoleUser},
			mocks: func(m *userMocks) {
				passthroughTx(m.txManager, "CreateUser").Times(1)
				m.userRepo.EXPECT().Create(ctx, nil, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, u *entity.User) (*entity.User, error) {
						assert.Equal(t, "joao@goldenpr.com.br", u.Email)
						assert.Equal(t, "João", u.Name)
						created := *u
						created.CreatedAt = time.Now()
						return &created, nil
					})
			},
		},
		{
			desc:     "OutsideCorporateDomain",
			user:     &entity.User{Email: "joao@gmail.com", Name: "João", Role: entity.RoleUser},
			mocks:    func(*userMocks) {},
			expected: entity.ErrCorporateDomain,
		},
		{
			desc:     "UnknownRole",
			user:     &entity.User{Email: "joao@goldenpr.com.br", Name: "João", Role: "owner"},
			mocks:    func(*userMocks) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc:     "MissingName",
			user:     &entity.User{Email: "joao@goldenpr.com.br", Role: entity.RoleUser},
			mocks:    func(*userMocks) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc: "AlreadyRegistered",
			user: &entity.User{Email: "joao@goldenpr.com.br", Name: "João", Role: entity.RoleUser},
			mocks: func(m *userMocks) {
				m.txManager.EXPECT().ExecuteInTransaction(ctx, "CreateUser", gomock.Any()).
					Return(entity.ErrConflictingData)
			},
			expected: entity.ErrConflictingData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newUserService(t)
			tc.mocks(m)

			created, err := svc.CreateUser(ctx, tc.user)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				assert.Nil(t, created)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "joao@goldenpr.com.br", created.Email)
			assert.False(t, created.CreatedAt.IsZero())
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc     string
		email    string
		user     *entity.User
		mocks    func(m *userMocks)
		expected error
	}{
		{
			desc:  "PromoteUser",
			email: "joao@goldenpr.com.br",
			user:  &entity.User{Email: "ignored@goldenpr.com.br", Name: "João", Role: entity.RoleAdmin},
			mocks: func(m *userMocks) {
				passthroughTx(m.txManager, "UpdateUser").Times(1)
				m.userRepo.EXPECT().Update(ctx, nil, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, u *entity.User) (*entity.User, error) {
						assert.Equal(t, "joao@goldenpr.com.br", u.Email)
						return u, nil
					})
			},
		},
		{
			desc:     "DemoteRootAdmin",
			email:    _rootAdmin,
			user:     &entity.User{Name: "Administrador", Role: entity.RoleUser},
			mocks:    func(*userMocks) {},
			expected: entity.ErrProtectedAccount,
		},
		{
			desc:  "UnknownUser",
			email: "ghost@goldenpr.com.br",
			user:  &entity.User{Name: "Ghost", Role: entity.RoleUser},
			mocks: func(m *userMocks) {
				m.txManager.EXPECT().ExecuteInTransaction(ctx, "UpdateUser", gomock.Any()).
					Return(entity.ErrDataNotFound)
			},
			expected: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newUserService(t)
			tc.mocks(m)

			updated, err := svc.UpdateUser(ctx, tc.email, tc.user)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.email, updated.Email)
			assert.Equal(t, entity.RoleAdmin, updated.Role)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	admin := caller("gerente@goldenpr.com.br", entity.RoleAdmin)

	testCases := []struct {
		desc     string
		email    string
		mocks    func(m *userMocks)
		expected error
	}{
		{
			desc:  "Success",
			email: "joao@goldenpr.com.br",
			mocks: func(m *userMocks) {
				passthroughTx(m.txManager, "DeleteUser").Times(1)
				m.userRepo.EXPECT().Delete(ctx, nil, "joao@goldenpr.com.br").Return(nil)
			},
		},
		{
			desc:     "Self",
			email:    "Gerente@goldenpr.com.br",
			mocks:    func(*userMocks) {},
			expected: entity.ErrSelfDeletion,
		},
		{
			desc:     "RootAdmin",
			email:    _rootAdmin,
			mocks:    func(*userMocks) {},
			expected: entity.ErrProtectedAccount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newUserService(t)
			tc.mocks(m)

			err := svc.DeleteUser(ctx, admin, tc.email)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newUserService(t)

	users := []*entity.User{
		{Email: _rootAdmin, Name: "Administrador", Role: entity.RoleAdmin},
		{Email: "joao@goldenpr.com.br", Name: "João", Role: entity.RoleUser},
	}
	m.userRepo.EXPECT().List(ctx).Return(users, nil)

	got, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
