package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/service"
	"goldenorders/pkg/storage/sqlite"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFormatOrderID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		ms       int64
		expected string
	}{
		{desc: "LastSixDigits", ms: 1700000123456, expected: "PED-123456"},
		{desc: "LeadingZerosKept", ms: 1700000000042, expected: "PED-000042"},
		{desc: "ShortValue", ms: 42, expected: "PED-42"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, service.FormatOrderID(tc.ms))
		})
	}
}

type saveOrderTestExpected struct {
	id  string
	err error
}

func TestOrderService_SaveOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.UnixMilli(1700000123456)
	dbErr := errors.New("dial tcp 127.0.0.1:5432: connection refused")

	testCases := []struct {
		desc     string
		setup    func() *entity.Order
		mocks    func(m *orderMocks, order *entity.Order)
		expected saveOrderTestExpected
	}{
		{
			desc:  "Success",
			setup: generateFakeOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "save order started", gomock.Any()).
					Times(1)

				passthroughTx(m.txManager, "SaveOrder").Times(1)

				m.orderRepo.EXPECT().Upsert(ctx, nil, order).
					Return(now, now, nil).Times(1)
				m.itemRepo.EXPECT().Replace(ctx, nil, order.ID, order.Items).
					Return(nil).Times(1)
				m.contactRepo.EXPECT().Replace(ctx, nil, order.ID, order.Contacts).
					Return(nil).Times(1)
				m.addressRepo.EXPECT().Replace(ctx, nil, order.ID, &order.Customer).
					Return(nil).Times(1)

				m.cache.EXPECT().Put(order.ID, order, time.Minute).Times(1)
				m.metrics.EXPECT().Saved("kafka").Times(1)

				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "order saved successfully", gomock.Any()).
					Times(1)
				allowLogs(m.logger)
			},
		},
		{
			desc: "AssignsNextFreeID",
			setup: func() *entity.Order {
				order := generateFakeOrder()
				order.ID = ""
				return order
			},
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				gomock.InOrder(
					m.orderRepo.EXPECT().Exists(ctx, "PED-123456").Return(true, nil),
					m.orderRepo.EXPECT().Exists(ctx, "PED-123457").Return(false, nil),
				)

				passthroughTx(m.txManager, "SaveOrder").Times(1)
				m.orderRepo.EXPECT().Upsert(ctx, nil, order).Return(now, now, nil)
				m.itemRepo.EXPECT().Replace(ctx, nil, "PED-123457", order.Items).Return(nil)
				m.contactRepo.EXPECT().Replace(ctx, nil, "PED-123457", order.Contacts).Return(nil)
				m.addressRepo.EXPECT().Replace(ctx, nil, "PED-123457", &order.Customer).Return(nil)

				m.cache.EXPECT().Put("PED-123457", order, time.Minute)
				m.metrics.EXPECT().Saved("kafka")
			},
			expected: saveOrderTestExpected{id: "PED-123457"},
		},
		{
			desc: "ValidationFailed",
			setup: func() *entity.Order {
				order := generateFakeOrder()
				order.Items = nil
				order.Customer.Document = "123.456.789-00"
				order.Customer.Name = "   "
				return order
			},
			mocks: func(m *orderMocks, order *entity.Order) {
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "order validation failed", gomock.Any()).
					Times(1)
			},
			expected: saveOrderTestExpected{err: entity.ErrInvalidData},
		},
		{
			desc:  "StoredLocallyOnDatabaseFailure",
			setup: generateFakeOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				passthroughTx(m.txManager, "SaveOrder").Times(1)
				m.orderRepo.EXPECT().Upsert(ctx, nil, order).
					Return(time.Time{}, time.Time{}, dbErr).Times(1)

				m.pending.EXPECT().Put(gomock.Any(), order.ID, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id string, payload []byte, reason string) error {
						var stored entity.Order
						if err := json.Unmarshal(payload, &stored); err != nil {
							return err
						}
						if stored.ID != id || reason == "" {
							return fmt.Errorf("unexpected pending record %q", id)
						}
						return nil
					}).Times(1)
				m.metrics.EXPECT().StoredLocally().Times(1)
			},
			expected: saveOrderTestExpected{err: entity.ErrStoredLocally},
		},
		{
			desc:  "FallbackStoreFailure",
			setup: generateFakeOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				passthroughTx(m.txManager, "SaveOrder").Times(1)
				m.orderRepo.EXPECT().Upsert(ctx, nil, order).
					Return(time.Time{}, time.Time{}, dbErr).Times(1)
				m.pending.EXPECT().Put(gomock.Any(), order.ID, gomock.Any(), gomock.Any()).
					Return(errors.New("disk full")).Times(1)
			},
			expected: saveOrderTestExpected{err: dbErr},
		},
		{
			desc:  "ConstraintViolationNotStored",
			setup: generateFakeOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				passthroughTx(m.txManager, "SaveOrder").Times(1)
				m.orderRepo.EXPECT().Upsert(ctx, nil, order).Return(now, now, nil)
				m.itemRepo.EXPECT().Replace(ctx, nil, order.ID, order.Items).
					Return(fmt.Errorf("copy from: %w", entity.ErrInvalidData)).Times(1)
			},
			expected: saveOrderTestExpected{err: entity.ErrInvalidData},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newOrderService(t)
			svc.SetNow(func() time.Time { return now })

			order := tc.setup()
			tc.mocks(m, order)

			saved, err := svc.SaveOrder(ctx, order, "kafka")
			if tc.expected.err != nil {
				require.ErrorIs(t, err, tc.expected.err)
				require.Nil(t, saved)
				if tc.desc == "FallbackStoreFailure" {
					assert.NotErrorIs(t, err, entity.ErrStoredLocally)
				}
				return
			}

			require.NoError(t, err)
			require.Same(t, order, saved)
			assert.Equal(t, entity.StatusDraft, saved.Status)
			assert.Equal(t, now, saved.CreatedAt)
			assert.True(t, saved.GlobalValue2.Equal(saved.GlobalValue1.Add(decimal.NewFromInt(50))))
			assert.True(t, saved.TotalInBRL.Equal(saved.GlobalValue2))
			for _, item := range saved.Items {
				assert.True(t, item.Total.Equal(item.Quantity.Mul(item.UnitPrice)))
			}
			if tc.expected.id != "" {
				assert.Equal(t, tc.expected.id, saved.ID)
			}
		})
	}
}

func TestOrderService_SaveOrder_ValidationReportsEveryField(t *testing.T) {
	t.Parallel()

	svc, m := newOrderService(t)
	allowLogs(m.logger)

	order := generateFakeOrder()
	order.Customer.Document = "11.111.111/1111-11"
	order.Customer.Phone = "123"
	order.Classification = entity.ClassificationOther
	order.Contacts[0].Phone = "(00) 1234-5678"

	_, err := svc.SaveOrder(context.Background(), order, "http")
	require.ErrorIs(t, err, entity.ErrInvalidData)

	msg := err.Error()
	for _, field := range []string{"Document", "Phone", "ClassificationOther", "Contacts[0].Phone"} {
		assert.Contains(t, msg, field)
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.UnixMilli(1700000654321)

	svc, m := newOrderService(t)
	svc.SetNow(func() time.Time { return now })
	allowLogs(m.logger)

	order := generateFakeOrder()
	order.ID = "PED-999999"
	order.CreatedBy = "someone@else.com"

	copiedItem := uuid.New()
	order.Items[0].ID = copiedItem
	copiedContact := uuid.New()
	order.Contacts[0].ID = copiedContact

	m.orderRepo.EXPECT().Exists(ctx, "PED-654321").Return(false, nil)
	passthroughTx(m.txManager, "SaveOrder").Times(1)
	m.orderRepo.EXPECT().Upsert(ctx, nil, order).Return(now, now, nil)
	m.itemRepo.EXPECT().Replace(ctx, nil, "PED-654321", order.Items).Return(nil)
	m.contactRepo.EXPECT().Replace(ctx, nil, "PED-654321", order.Contacts).Return(nil)
	m.addressRepo.EXPECT().Replace(ctx, nil, "PED-654321", &order.Customer).Return(nil)
	m.cache.EXPECT().Put("PED-654321", order, time.Minute)
	m.metrics.EXPECT().Saved("http")

	created, err := svc.CreateOrder(ctx, caller("ana@goldenpr.com.br", entity.RoleUser), order)
	require.NoError(t, err)
	assert.Equal(t, "PED-654321", created.ID)
	assert.Equal(t, "ana@goldenpr.com.br", created.CreatedBy)

	assert.NotEqual(t, copiedItem, created.Items[0].ID)
	assert.NotEqual(t, copiedContact, created.Contacts[0].ID)
	for _, item := range created.Items {
		assert.NotEqual(t, uuid.Nil, item.ID)
	}
}

func TestOrderService_UpdateOrder_KeepsAuthorship(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	svc, m := newOrderService(t)
	allowLogs(m.logger)

	existing := persistedOrder()
	existing.CreatedBy = "owner@goldenpr.com.br"
	existing.PDFURL = "https://files.example.com/order-pdfs/x.pdf"

	order := generateFakeOrder()

	m.orderRepo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
	passthroughTx(m.txManager, "SaveOrder").Times(1)
	m.orderRepo.EXPECT().Upsert(ctx, nil, order).Return(now, now, nil)
	m.itemRepo.EXPECT().Replace(ctx, nil, existing.ID, order.Items).Return(nil)
	m.contactRepo.EXPECT().Replace(ctx, nil, existing.ID, order.Contacts).Return(nil)
	m.addressRepo.EXPECT().Replace(ctx, nil, existing.ID, &order.Customer).Return(nil)
	m.cache.EXPECT().Put(existing.ID, order, time.Minute)
	m.metrics.EXPECT().Saved("http")

	updated, err := svc.UpdateOrder(ctx, caller("admin@goldenpr.com.br", entity.RoleAdmin), existing.ID, order)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "owner@goldenpr.com.br", updated.CreatedBy)
	assert.Equal(t, existing.PDFURL, updated.PDFURL)
}

func TestOrderService_UpdateOrder_ForeignOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	svc, m := newOrderService(t)
	allowLogs(m.logger)

	existing := persistedOrder()
	existing.CreatedBy = "owner@goldenpr.com.br"

	m.orderRepo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)

	updated, err := svc.UpdateOrder(ctx, caller("intruder@goldenpr.com.br", entity.RoleUser), existing.ID, generateFakeOrder())
	require.ErrorIs(t, err, entity.ErrForbidden)
	assert.Nil(t, updated)
}

func TestOrderService_GetOrderFor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	const owner = "owner@goldenpr.com.br"

	testCases := []struct {
		desc     string
		caller   entity.Authenticated
		expected error
	}{
		{desc: "Owner", caller: caller(owner, entity.RoleUser)},
		{desc: "Admin", caller: caller("luciano@goldenpr.com.br", entity.RoleAdmin)},
		{desc: "OtherSeller", caller: caller("intruder@goldenpr.com.br", entity.RoleUser), expected: entity.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newOrderService(t)
			allowLogs(m.logger)

			order := persistedOrder()
			order.CreatedBy = owner
			m.cache.EXPECT().Get(order.ID).Return(order, true)

			got, err := svc.GetOrderFor(ctx, tc.caller, order.ID)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
		})
	}
}

type getOrderTestExpected struct {
	drift []string
	err   error
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc     string
		setup    func() *entity.Order
		mocks    func(m *orderMocks, order *entity.Order)
		expected getOrderTestExpected
	}{
		{
			desc:  "CacheHit",
			setup: persistedOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "get order requested", gomock.Any()).
					Times(1)
				m.cache.EXPECT().Get(order.ID).Return(order, true).Times(1)
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "order served from cache", gomock.Any()).
					Times(1)
				allowLogs(m.logger)
			},
		},
		{
			desc:  "FromDatabase",
			setup: persistedOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				header := *order
				header.Items, header.Contacts = nil, nil
				header.Customer.BillingAddress = entity.Address{}

				m.cache.EXPECT().Get(order.ID).Return(nil, false)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), order.ID).Return(&header, nil)
				m.itemRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(order.Items, nil)
				m.contactRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(order.Contacts, nil)
				m.addressRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(
					map[entity.AddressKind]entity.Address{entity.AddressBilling: order.Customer.BillingAddress}, nil,
				)
				m.cache.EXPECT().Put(order.ID, gomock.Any(), time.Minute)
			},
		},
		{
			desc: "PersistedTotalsDrift",
			setup: func() *entity.Order {
				order := persistedOrder()
				order.TotalAmount = order.TotalAmount.Add(decimal.NewFromInt(10))
				return order
			},
			mocks: func(m *orderMocks, order *entity.Order) {
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "persisted totals drift", gomock.Any()).
					Times(1)
				allowLogs(m.logger)

				header := *order
				m.cache.EXPECT().Get(order.ID).Return(nil, false)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), order.ID).Return(&header, nil)
				m.itemRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(order.Items, nil)
				m.contactRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(nil, nil)
				m.addressRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(nil, nil)
				m.metrics.EXPECT().TotalsDrift("total_amount").Times(1)
				m.cache.EXPECT().Put(order.ID, gomock.Any(), time.Minute)
			},
			expected: getOrderTestExpected{drift: []string{"total_amount"}},
		},
		{
			desc:  "NotFound",
			setup: persistedOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "failed to get order from database", gomock.Any()).
					Times(1)
				allowLogs(m.logger)

				m.cache.EXPECT().Get(order.ID).Return(nil, false)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), order.ID).Return(nil, entity.ErrDataNotFound)
			},
			expected: getOrderTestExpected{err: entity.ErrDataNotFound},
		},
		{
			desc:  "ChildReadFailure",
			setup: persistedOrder,
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)

				header := *order
				m.cache.EXPECT().Get(order.ID).Return(nil, false)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), order.ID).Return(&header, nil)
				m.itemRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(nil, context.DeadlineExceeded)
				m.contactRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(nil, nil).AnyTimes()
				m.addressRepo.EXPECT().ListByOrderID(gomock.Any(), order.ID).Return(nil, nil).AnyTimes()
			},
			expected: getOrderTestExpected{err: context.DeadlineExceeded},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newOrderService(t)
			order := tc.setup()
			tc.mocks(m, order)

			got, err := svc.GetOrder(ctx, order.ID)
			if tc.expected.err != nil {
				require.ErrorIs(t, err, tc.expected.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
			assert.Len(t, got.Items, len(order.Items))
			assert.Equal(t, tc.expected.drift, got.TotalsDrift)
			assert.True(t, got.TotalAmount.Equal(got.GlobalValue2))
			assert.True(t, got.BalanceDue.Equal(got.TotalInBRL))
			if tc.desc == "FromDatabase" {
				assert.Equal(t, order.Customer.BillingAddress, got.Customer.BillingAddress)
				assert.Len(t, got.Contacts, len(order.Contacts))
			}
		})
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc      string
		caller    entity.Authenticated
		createdBy string
	}{
		{desc: "AdminSeesEveryOrder", caller: caller("luciano@goldenpr.com.br", entity.RoleAdmin), createdBy: ""},
		{desc: "UserSeesOwnOrders", caller: caller("ana@goldenpr.com.br", entity.RoleUser), createdBy: "ana@goldenpr.com.br"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newOrderService(t)

			order := persistedOrder()
			order.DownPayment = order.TotalInBRL.Sub(decimal.NewFromInt(1))
			m.orderRepo.EXPECT().List(ctx, tc.createdBy).Return([]*entity.Order{order}, nil).Times(1)

			orders, err := svc.ListOrders(ctx, tc.caller)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.True(t, decimal.NewFromInt(1).Equal(orders[0].BalanceDue))
		})
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	const owner = "owner@goldenpr.com.br"

	testCases := []struct {
		desc     string
		caller   entity.Authenticated
		mocks    func(m *orderMocks, order *entity.Order)
		expected error
	}{
		{
			desc:   "OwnerDeletes",
			caller: caller(owner, entity.RoleUser),
			mocks: func(m *orderMocks, order *entity.Order) {
				m.orderRepo.EXPECT().GetByID(ctx, order.ID).Return(order, nil)
				passthroughTx(m.txManager, "DeleteOrder").Times(1)
				m.orderRepo.EXPECT().Delete(ctx, nil, order.ID).Return(nil).Times(1)
				m.cache.EXPECT().Remove(order.ID).Return(true).Times(1)
				m.logger.EXPECT().Ctx(gomock.Any()).Return(m.logger).AnyTimes()
				m.logger.EXPECT().
					LogAttrs(ctx, gomock.Any(), "order deleted", gomock.Any()).
					Times(1)
			},
		},
		{
			desc:   "AdminDeletesAnyOrder",
			caller: caller("luciano@goldenpr.com.br", entity.RoleAdmin),
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)
				m.orderRepo.EXPECT().GetByID(ctx, order.ID).Return(order, nil)
				passthroughTx(m.txManager, "DeleteOrder").Times(1)
				m.orderRepo.EXPECT().Delete(ctx, nil, order.ID).Return(nil).Times(1)
				m.cache.EXPECT().Remove(order.ID).Return(false).Times(1)
			},
		},
		{
			desc:   "OtherUserForbidden",
			caller: caller("intruder@goldenpr.com.br", entity.RoleUser),
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)
				m.orderRepo.EXPECT().GetByID(ctx, order.ID).Return(order, nil)
			},
			expected: entity.ErrForbidden,
		},
		{
			desc:   "NotFound",
			caller: caller(owner, entity.RoleUser),
			mocks: func(m *orderMocks, order *entity.Order) {
				allowLogs(m.logger)
				m.orderRepo.EXPECT().GetByID(ctx, order.ID).Return(nil, entity.ErrDataNotFound)
			},
			expected: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newOrderService(t)
			order := persistedOrder()
			order.CreatedBy = owner
			tc.mocks(m, order)

			err := svc.DeleteOrder(ctx, tc.caller, order.ID)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrderService_ReplayPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	svc, m := newOrderService(t)
	allowLogs(m.logger)

	good := persistedOrder()
	payload, err := json.Marshal(good)
	require.NoError(t, err)

	m.pending.EXPECT().List(ctx).Return([]sqlite.Record{
		{ID: good.ID, Payload: payload},
		{ID: "PED-000001", Payload: []byte("{not json"), Attempts: 2},
	}, nil)

	passthroughTx(m.txManager, "SaveOrder").Times(1)
	m.orderRepo.EXPECT().Upsert(ctx, nil, gomock.Any()).Return(now, now, nil)
	m.itemRepo.EXPECT().Replace(ctx, nil, good.ID, gomock.Len(len(good.Items))).Return(nil)
	m.contactRepo.EXPECT().Replace(ctx, nil, good.ID, gomock.Any()).Return(nil)
	m.addressRepo.EXPECT().Replace(ctx, nil, good.ID, gomock.Any()).Return(nil)

	m.pending.EXPECT().Delete(ctx, good.ID).Return(nil).Times(1)
	m.cache.EXPECT().Remove(good.ID).Return(false)
	m.metrics.EXPECT().Replayed(true).Times(1)
	m.metrics.EXPECT().Saved("replay").Times(1)

	m.pending.EXPECT().MarkAttempt(ctx, "PED-000001", gomock.Any()).Return(nil).Times(1)
	m.metrics.EXPECT().Replayed(false).Times(1)

	report, err := svc.ReplayPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.ReplayReport{Replayed: 1, Failed: 1}, report)
}

func TestOrderService_ReplayPending_Empty(t *testing.T) {
	t.Parallel()

	svc, m := newOrderService(t)
	allowLogs(m.logger)
	m.pending.EXPECT().List(gomock.Any()).Return(nil, nil)

	report, err := svc.ReplayPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report)
}
