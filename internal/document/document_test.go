package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/pricing"
	mock_logger "goldenorders/pkg/logger/mock"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r := NewRenderer("", "", mock_logger.NewMockLogger(gomock.NewController(t)))
	r.now = func() time.Time { return fixedNow }
	return r
}

func sampleOrder(items int) *entity.Order {
	order := &entity.Order{
		ID:             "PED-123456",
		Date:           "2025-03-14",
		Salesperson:    "Ana Souza",
		Classification: entity.ClassificationSale,
		Status:         entity.StatusDraft,
		Currency:       entity.CurrencyReal,
		Customer: entity.CustomerInfo{
			Name:     "Hospital São Lucas Ltda",
			Document: "11222333000181",
			Phone:    "11987654321",
			Email:    "compras@saolucas.com.br",
			BillingAddress: entity.Address{
				Street: "Av. Paulista", Number: "1000", Complement: "Sala 5",
				Neighborhood: "Bela Vista", City: "São Paulo", State: "SP", ZipCode: "01310100",
			},
			CollectionAddress: entity.Address{
				Number: "200", Complement: "Bloco B", Neighborhood: "Jardins",
				City: "São Paulo", State: "SP", ZipCode: "01415000",
			},
			DeliveryAddress: entity.Address{
				Number: "10", Neighborhood: "Centro",
				City: "Campinas", State: "SP", ZipCode: "13010000",
			},
		},
		Contacts: []*entity.Contact{
			{Name: "Carlos Lima", JobTitle: "Comprador", Department: "Suprimentos", Phone: "1133334444", Email: "carlos@saolucas.com.br"},
		},
		DiscountTotal: decimal.NewFromInt(50),
		FreightValue:  decimal.NewFromInt(25),
		PaymentTerms:  "30/60/90 dias",
		DeliveryTime:  "15 dias úteis",
		Validity:      "30 dias",
		Notes:         "Entregar no almoxarifado.\nHorário comercial.",
	}

	for i := 0; i < items; i++ {
		order.Items = append(order.Items, &entity.Item{
			Description: gofakeit.ProductName(),
			Unit:        "UN",
			Quantity:    decimal.NewFromInt(int64(i%4 + 1)),
			UnitPrice:   decimal.NewFromFloat(199.9),
			Weight:      decimal.NewFromFloat(1.5),
		})
	}
	pricing.Apply(order)
	return order
}

func TestSpreadsheet_AddressBlockCells(t *testing.T) {
	t.Parallel()

	order := sampleOrder(1)
	order.Customer.DeliveryAddress.Street = "Rua da Entrega"
	order.Customer.DeliveryAddress.Complement = "Doca 3"

	data, err := newTestRenderer(t).Spreadsheet(order)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	expected := map[string]string{
		"B13": "200",
		"C13": "Bloco B",
		"E13": "Jardins",
		"I13": "São Paulo",
		"B14": "SP",
		"D14": "01415-000",
		"B17": "10",
		"C17": "Doca 3",
		"E17": "Centro",
		"I17": "Campinas",
		"B18": "SP",
		"D18": "13010-000",
	}
	for cell, want := range expected {
		got, err := f.GetCellValue(_sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	for _, cell := range []string{"B12", "B16", "C18", "I14", "I18"} {
		got, err := f.GetCellValue(_sheetName, cell)
		require.NoError(t, err)
		assert.Empty(t, got, cell)
	}
}

func TestSpreadsheet_RoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc  string
		items int
		edit  func(o *entity.Order)
	}{
		{desc: "items fit the reserved rows", items: 2},
		{desc: "summary shifts down", items: 7},
		{
			desc:  "foreign currency with minimum billing",
			items: 3,
			edit: func(o *entity.Order) {
				o.Currency = entity.CurrencyDollar
				o.ExchangeRate = decimal.RequireFromString("0.2")
				o.MinBilling = true
				o.MinBillingValue = decimal.NewFromInt(1000)
				o.FinalCustomer = true
				o.BiddingNumber = "PE-12/2025"
				o.BiddingDate = "2025-02-01"
			},
		},
		{
			desc:  "other classification",
			items: 1,
			edit: func(o *entity.Order) {
				o.Classification = entity.ClassificationOther
				o.ClassificationOther = "Comodato"
				o.Customer.StateRegistration = "123.456.789"
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			order := sampleOrder(tc.items)
			if tc.edit != nil {
				tc.edit(order)
				pricing.Apply(order)
			}

			data, err := newTestRenderer(t).Spreadsheet(order)
			require.NoError(t, err)

			got, err := ImportSpreadsheet(bytes.NewReader(data))
			require.NoError(t, err)

			assert.Equal(t, order.ID, got.ID)
			assert.Equal(t, order.Date, got.Date)
			assert.Equal(t, order.Classification, got.Classification)
			assert.Equal(t, order.ClassificationOther, got.ClassificationOther)
			assert.Equal(t, order.Customer.Name, got.Customer.Name)
			assert.Equal(t, order.Customer.Document, got.Customer.Document)
			assert.Equal(t, order.Customer.StateRegistration, got.Customer.StateRegistration)
			assert.Equal(t, order.Customer.CollectionAddress, got.Customer.CollectionAddress)
			assert.Equal(t, order.Customer.DeliveryAddress, got.Customer.DeliveryAddress)
			assert.Equal(t, order.Currency, got.Currency)
			assert.Equal(t, order.MinBilling, got.MinBilling)
			assert.Equal(t, order.FinalCustomer, got.FinalCustomer)
			assert.Equal(t, order.BiddingNumber, got.BiddingNumber)
			assert.Equal(t, order.PaymentTerms, got.PaymentTerms)
			require.Len(t, got.Contacts, 1)
			assert.Equal(t, order.Contacts[0].Name, got.Contacts[0].Name)

			require.Len(t, got.Items, len(order.Items))
			for i, item := range got.Items {
				assert.Equal(t, order.Items[i].Description, item.Description)
				assert.True(t, order.Items[i].Quantity.Equal(item.Quantity))
				assert.True(t, order.Items[i].UnitPrice.Equal(item.UnitPrice))
			}

			assert.True(t, order.DiscountTotal.Equal(got.DiscountTotal))
			assert.True(t, order.FreightValue.Equal(got.FreightValue))
			if order.IsForeign() {
				assert.True(t, order.ExchangeRate.Equal(got.ExchangeRate))
			}
		})
	}
}

func TestImportSpreadsheet_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ImportSpreadsheet(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, entity.ErrInvalidData)
}

func TestOrderPDF(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		items    int
		minPages int
		maxPages int
	}{
		{desc: "short order", items: 2, minPages: 1, maxPages: 2},
		{desc: "long order paginates", items: 100, minPages: 3, maxPages: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			r := newTestRenderer(t)
			order := sampleOrder(tc.items)

			out, err := r.OrderPDF(order)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

			pages := r.orderPage(order).pdf.PageCount()
			assert.GreaterOrEqual(t, pages, tc.minPages)
			assert.LessOrEqual(t, pages, tc.maxPages)
		})
	}
}

func TestOrderPDF_ForeignCurrency(t *testing.T) {
	t.Parallel()

	order := sampleOrder(3)
	order.Currency = entity.CurrencyEuro
	order.ExchangeRate = decimal.RequireFromString("0.17")
	order.DownPayment = decimal.NewFromInt(100)
	order.BiddingNumber = "PE-1"
	order.CommitmentNumber = "EMP-9"
	pricing.Apply(order)

	out, err := newTestRenderer(t).OrderPDF(order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestAcceptanceReceiptPDF(t *testing.T) {
	t.Parallel()

	order := sampleOrder(2)
	order.DownPayment = decimal.NewFromInt(100)

	signer := Signer{
		Name:      "Maria da Silva",
		Document:  "52998224725",
		Signature: "Maria da Silva",
		SignedAt:  fixedNow,
	}

	out, err := newTestRenderer(t).AcceptanceReceiptPDF(order, signer, NewIntegrityToken(fixedNow, 42))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDF_AccentedText(t *testing.T) {
	t.Parallel()

	order := sampleOrder(3)
	order.Items[0].Description = "Cateter maçã com válvula anti-refluxo, estéril, embalagem unitária " +
		"para uso em centro cirúrgico e unidade de terapia intensiva"
	order.Notes = "Observação: entrega após às 14h.\nPeça frágil – manusear com cuidado."
	order.PaymentTerms = "30/60/90 dias, boleto bancário após emissão da nota"
	order.DeliveryTime = "Até 15 dias úteis"
	order.Customer.Name = ""

	r := newTestRenderer(t)

	out, err := r.OrderPDF(order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	signer := Signer{
		Name:      "João Conceição",
		Document:  "52998224725",
		Signature: "João Conceição",
		SignedAt:  fixedNow,
	}
	out, err = r.AcceptanceReceiptPDF(order, signer, NewIntegrityToken(fixedNow, 0))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPage_WrapKeepsFontEncoding(t *testing.T) {
	t.Parallel()

	p := newTestRenderer(t).newPage("t", "s")
	p.font("", 9, [3]int{})

	lines := p.wrap("Equipamentos Médicos de alta precisão para hospitais e clínicas", 40)
	require.Greater(t, len(lines), 1)

	joined := strings.Join(lines, " ")
	assert.Contains(t, joined, p.tr("Médicos"))
	assert.NotContains(t, joined, "\uFFFD")
}

func TestNewRenderer_Logo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	pngPath := filepath.Join(dir, "logo.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 184, G: 134, B: 11, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(pngPath, buf.Bytes(), 0o600))

	brokenPath := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(brokenPath, []byte("not an image"), 0o600))

	testCases := []struct {
		desc     string
		path     string
		hasLogo  bool
		mockWarn bool
	}{
		{desc: "valid png", path: pngPath, hasLogo: true},
		{desc: "undecodable file", path: brokenPath, mockWarn: true},
		{desc: "missing file", path: filepath.Join(dir, "none.png"), mockWarn: true},
		{desc: "no path configured", path: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			log := mock_logger.NewMockLogger(ctrl)
			if tc.mockWarn {
				log.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), "logo unavailable, using text header", gomock.Any()).Times(1)
			}

			r := NewRenderer(tc.path, "", log)
			assert.Equal(t, tc.hasLogo, r.logo != nil)
			assert.Equal(t, DefaultCompanyName, r.company)

			out, err := r.OrderPDF(sampleOrder(1))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestIntegrityToken(t *testing.T) {
	t.Parallel()

	base := regexp.MustCompile(`^SHA\.[0-9A-Z]+\.[0-9A-Z]{6}$`)

	token := NewIntegrityToken(fixedNow, 0)
	assert.Regexp(t, base, token)
	assert.True(t, strings.HasPrefix(token, "SHA."+strings.ToUpper(strconv.FormatInt(fixedNow.UnixMilli(), 36))+"."))

	withLog := NewIntegrityToken(fixedNow, 17)
	assert.Regexp(t, `^SHA\.[0-9A-Z]+\.[0-9A-Z]{6}\.LOG17$`, withLog)

	assert.Equal(t, token+".LOG3", WithLogID(token, 3))
	assert.Equal(t, token, WithLogID(token, 0))
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	ms := fixedNow.UnixMilli()

	testCases := []struct {
		desc     string
		got      string
		expected string
	}{
		{desc: "spreadsheet", got: SpreadsheetFileName("PED-000001"), expected: "PEDIDO_GOLDEN_PED-000001.xlsx"},
		{desc: "pdf", got: PDFFileName("PED-000001"), expected: "PEDIDO_PED-000001.pdf"},
		{desc: "archive", got: ArchiveFileName("PED-000001", fixedNow), expected: "PED-000001_" + itoa(ms) + ".pdf"},
		{
			desc:     "receipt uses first name",
			got:      ReceiptFileName("PED-000001", "Maria da Silva", fixedNow),
			expected: "Aceite_Pedido_PED-000001_Maria_" + itoa(ms) + ".pdf",
		},
		{
			desc:     "receipt replaces non alphanumerics",
			got:      ReceiptFileName("PED-000001", "  José-Luís Souza", fixedNow),
			expected: "Aceite_Pedido_PED-000001_Jos__Lu_s_" + itoa(ms) + ".pdf",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.got)
		})
	}
}

func TestShareLinks(t *testing.T) {
	t.Parallel()

	order := sampleOrder(2)

	t.Run("whatsapp adds country code", func(t *testing.T) {
		t.Parallel()

		link := WhatsAppLink(order, "")
		require.True(t, strings.HasPrefix(link, "https://wa.me/5511987654321?text="))

		u, err := url.Parse(link)
		require.NoError(t, err)
		text := u.Query().Get("text")
		assert.Contains(t, text, order.ID)
		assert.Contains(t, text, order.Customer.Name)
		assert.NotContains(t, u.RawQuery, "+")
	})

	t.Run("whatsapp keeps explicit country code", func(t *testing.T) {
		t.Parallel()

		link := WhatsAppLink(order, "+55 (21) 99876-5432")
		assert.True(t, strings.HasPrefix(link, "https://wa.me/5521998765432?"))
	})

	t.Run("mailto", func(t *testing.T) {
		t.Parallel()

		link := MailtoLink(order, "", "Olá, segue proposta")
		assert.True(t, strings.HasPrefix(link, "mailto:compras@saolucas.com.br?subject="))
		assert.Contains(t, link, "Proposta%20Comercial%20-%20Pedido%20PED-123456")
		assert.Contains(t, link, "body=Ol%C3%A1%2C%20segue%20proposta")
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
