package service_test

import (
	"context"
	"testing"

	"goldenorders/internal/entity"
	"goldenorders/internal/service"
	mock_service "goldenorders/internal/service/mock"
	"goldenorders/pkg/viacep"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type lookupMocks struct {
	addresses *mock_service.MockAddressLookup
	rates     *mock_service.MockRateSource
	assistant *mock_service.MockAssistant
}

func newLookupService(t *testing.T) (*service.LookupService, *lookupMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &lookupMocks{
		addresses: mock_service.NewMockAddressLookup(ctrl),
		rates:     mock_service.NewMockRateSource(ctrl),
		assistant: mock_service.NewMockAssistant(ctrl),
	}
	return service.NewLookupService(m.addresses, m.rates, m.assistant), m
}

func TestLookupService_Address(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newLookupService(t)

	want := viacep.Result{
		ZipCode: "01310-100", Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP",
	}
	m.addresses.EXPECT().Lookup(ctx, "01310100").Return(want, nil)

	got, err := svc.Address(ctx, "01310100")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLookupService_ExchangeRate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc     string
		currency string
		mocks    func(m *lookupMocks)
		want     service.ExchangeRate
		rate     string
		invalid  bool
	}{
		{
			desc:     "Real",
			currency: "Real",
			mocks:    func(*lookupMocks) {},
			want:     service.ExchangeRate{Currency: entity.CurrencyReal},
			rate:     "1",
		},
		{
			desc:     "Dollar",
			currency: "usd",
			mocks: func(m *lookupMocks) {
				m.rates.EXPECT().Rate(ctx, "USD-BRL").Return(decimal.RequireFromString("5.4321"), true)
			},
			want: service.ExchangeRate{Currency: entity.CurrencyDollar, Pair: "USD-BRL"},
			rate: "5.4321",
		},
		{
			desc:     "EuroUnavailable",
			currency: "Euro",
			mocks: func(m *lookupMocks) {
				m.rates.EXPECT().Rate(ctx, "EUR-BRL").Return(decimal.Zero, false)
			},
			want: service.ExchangeRate{Currency: entity.CurrencyEuro, Pair: "EUR-BRL"},
		},
		{
			desc:     "Unknown",
			currency: "Yen",
			mocks:    func(*lookupMocks) {},
			invalid:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newLookupService(t)
			tc.mocks(m)

			got, err := svc.ExchangeRate(ctx, tc.currency)
			if tc.invalid {
				require.ErrorIs(t, err, entity.ErrInvalidData)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want.Currency, got.Currency)
			assert.Equal(t, tc.want.Pair, got.Pair)
			if tc.rate == "" {
				assert.Nil(t, got.Rate)
				return
			}
			require.NotNil(t, got.Rate)
			assert.True(t, decimal.RequireFromString(tc.rate).Equal(*got.Rate), got.Rate.String())
		})
	}
}

func TestLookupService_RewriteDescription(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newLookupService(t)

	m.assistant.EXPECT().RewriteDescription(ctx, "monitor multiparametro").
		Return("Monitor multiparamétrico de sinais vitais")

	assert.Equal(t, "Monitor multiparamétrico de sinais vitais", svc.RewriteDescription(ctx, "monitor multiparametro"))
}

func TestLookupService_Check(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc      string
		kind      string
		value     string
		valid     bool
		formatted string
	}{
		{desc: "CNPJ", kind: "document", value: "11222333000181", valid: true, formatted: _validCNPJ},
		{desc: "CPF", kind: "document", value: "52998224725", valid: true, formatted: _validCPF},
		{desc: "RepeatedDigits", kind: "document", value: "00000000000"},
		{desc: "Mobile", kind: "phone", value: "11987654321", valid: true, formatted: "(11) 98765-4321"},
		{desc: "Landline", kind: "phone", value: "1133334444", valid: true, formatted: "(11) 3333-4444"},
		{desc: "MobileWithoutNine", kind: "phone", value: "11887654321"},
		{desc: "CEP", kind: "cep", value: "01310100", valid: true, formatted: "01310-100"},
		{desc: "ShortCEP", kind: "cep", value: "0131"},
	}

	svc, _ := newLookupService(t)

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			got, err := svc.Check(tc.kind, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, got.Kind)
			assert.Equal(t, tc.valid, got.Valid)
			assert.Equal(t, tc.formatted, got.Formatted)
		})
	}

	_, err := svc.Check("passport", "X123")
	require.ErrorIs(t, err, entity.ErrInvalidData)
}
