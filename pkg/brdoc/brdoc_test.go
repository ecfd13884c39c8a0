package brdoc_test

import (
	"strings"
	"testing"

	"goldenorders/pkg/brdoc"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestIsValidDocument(t *testing.T) {
	testCases := []struct {
		desc     string
		input    string
		expected bool
	}{
		{desc: "ValidCPFDigits", input: "52998224725", expected: true},
		{desc: "ValidCPFMasked", input: "529.982.247-25", expected: true},
		{desc: "ValidCPFSecond", input: "111.444.777-35", expected: true},
		{desc: "CPFWrongCheckDigit", input: "52998224724", expected: false},
		{desc: "CPFAllOnes", input: "11111111111", expected: false},
		{desc: "CPFAllZerosMasked", input: "000.000.000-00", expected: false},
		{desc: "ValidCNPJDigits", input: "11222333000181", expected: true},
		{desc: "ValidCNPJMasked", input: "11.222.333/0001-81", expected: true},
		{desc: "ValidCNPJLeadingZero", input: "06.990.590/0001-23", expected: true},
		{desc: "CNPJWrongCheckDigit", input: "11222333000182", expected: false},
		{desc: "CNPJAllSame", input: "44444444444444", expected: false},
		{desc: "TooShort", input: "1234567890", expected: false},
		{desc: "TooLong", input: "112223330001811", expected: false},
		{desc: "Between", input: "123456789012", expected: false},
		{desc: "Empty", input: "", expected: false},
		{desc: "Letters", input: "abc.def.ghi-jk", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			if got := brdoc.IsValidDocument(tc.input); got != tc.expected {
				t.Errorf("IsValidDocument(%q) = %v; want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestIsValidDocument_RejectsRepeatedDigits(t *testing.T) {
	t.Parallel()

	for digit := '0'; digit <= '9'; digit++ {
		cpf := strings.Repeat(string(digit), 11)
		cnpj := strings.Repeat(string(digit), 14)

		require.False(t, brdoc.IsValidDocument(cpf), cpf)
		require.False(t, brdoc.IsValidDocument(cnpj), cnpj)
	}
}

func TestValidatePhone(t *testing.T) {
	testCases := []struct {
		desc     string
		input    string
		expected bool
	}{
		{desc: "Mobile", input: "11987654321", expected: true},
		{desc: "MobileMasked", input: "(11) 98765-4321", expected: true},
		{desc: "Landline", input: "1187654321", expected: true},
		{desc: "LandlineMasked", input: "(21) 3456-7890", expected: true},
		{desc: "TooShort", input: "119876543", expected: false},
		{desc: "TooLong", input: "119876543210", expected: false},
		{desc: "MobileWithoutNine", input: "21187654321", expected: false},
		{desc: "AreaCodeBelowRange", input: "0987654321", expected: false},
		{desc: "AreaCodeTen", input: "10987654321", expected: false},
		{desc: "Empty", input: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			if got := brdoc.ValidatePhone(tc.input); got != tc.expected {
				t.Errorf("ValidatePhone(%q) = %v; want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatters(t *testing.T) {
	testCases := []struct {
		desc     string
		format   func(string) string
		input    string
		expected string
	}{
		{desc: "CPF", format: brdoc.FormatCPF, input: "52998224725", expected: "529.982.247-25"},
		{desc: "CPFWrongLength", format: brdoc.FormatCPF, input: "123", expected: "123"},
		{desc: "CNPJ", format: brdoc.FormatCNPJ, input: "11222333000181", expected: "11.222.333/0001-81"},
		{desc: "DocumentCPF", format: brdoc.FormatDocument, input: "52998224725", expected: "529.982.247-25"},
		{desc: "DocumentCNPJ", format: brdoc.FormatDocument, input: "11222333000181", expected: "11.222.333/0001-81"},
		{desc: "DocumentOther", format: brdoc.FormatDocument, input: "RG 1234", expected: "RG 1234"},
		{desc: "PhoneMobile", format: brdoc.FormatPhone, input: "11987654321", expected: "(11) 98765-4321"},
		{desc: "PhoneLandline", format: brdoc.FormatPhone, input: "1187654321", expected: "(11) 8765-4321"},
		{desc: "PhoneUnchanged", format: brdoc.FormatPhone, input: "12345", expected: "12345"},
		{desc: "CEP", format: brdoc.FormatCEP, input: "01310100", expected: "01310-100"},
		{desc: "DateISO", format: brdoc.FormatDate, input: "2024-03-07", expected: "07/03/2024"},
		{desc: "DateRFC3339", format: brdoc.FormatDate, input: "2024-03-07T10:00:00Z", expected: "07/03/2024"},
		{desc: "DateGarbage", format: brdoc.FormatDate, input: "ontem", expected: "ontem"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, tc.format(tc.input))
		})
	}
}

func TestFormatters_DigitsRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := map[string]func(string) string{
		"11987654321":    brdoc.FormatPhone,
		"1132654321":     brdoc.FormatPhone,
		"01310100":       brdoc.FormatCEP,
		"52998224725":    brdoc.FormatCPF,
		"00000000191":    brdoc.FormatCPF,
		"11222333000181": brdoc.FormatCNPJ,
		"06990590000123": brdoc.FormatCNPJ,
	}

	for digits, format := range inputs {
		require.Equal(t, digits, brdoc.Digits(format(digits)))
	}
}

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "0", expected: "0,00"},
		{input: "34", expected: "34,00"},
		{input: "1234.5", expected: "1.234,50"},
		{input: "1234567.891", expected: "1.234.567,89"},
		{input: "-950.1", expected: "-950,10"},
		{input: "100000", expected: "100.000,00"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, brdoc.FormatMoney(decimal.RequireFromString(tc.input)))
		})
	}
}

func TestRegisterValidations(t *testing.T) {
	t.Parallel()

	v := validator.New()
	require.NoError(t, brdoc.RegisterValidations(v))

	type customer struct {
		Document string `validate:"cpfcnpj"`
		Phone    string `validate:"omitempty,brphone"`
		Zip      string `validate:"omitempty,cep"`
	}

	require.NoError(t, v.Struct(customer{Document: "11.222.333/0001-81", Phone: "11987654321", Zip: "01310-100"}))
	require.NoError(t, v.Struct(customer{Document: "52998224725"}))
	require.Error(t, v.Struct(customer{Document: "11111111111"}))
	require.Error(t, v.Struct(customer{Document: "52998224725", Phone: "21187654321"}))
	require.Error(t, v.Struct(customer{Document: "52998224725", Zip: "0131"}))
}

func TestCompleteCNPJ(t *testing.T) {
	require.Equal(t, "11222333000181", brdoc.CompleteCNPJ("112223330001"))
	require.Equal(t, "06990590000123", brdoc.CompleteCNPJ("06.990.590/0001"))
	require.Equal(t, "123", brdoc.CompleteCNPJ("123"))
	require.True(t, brdoc.IsValidCNPJ(brdoc.CompleteCNPJ("987654320001")))
}
