// Package document renders orders into the spreadsheet, PDF and acceptance
// receipt handed to customers, and names and links those files.
package document

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/big"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"
	"goldenorders/pkg/logger"
)

const (
	DefaultCompanyName = "Golden Equipamentos Médicos"

	_fallbackBrand = "GOLDEN EQUIPAMENTOS"
	_base36Upper   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type logo struct {
	data      []byte
	imageType string
}

// Renderer holds the assets shared by every document. A missing or unreadable
// logo is replaced by a text header.
type Renderer struct {
	company string
	logo    *logo
	now     func() time.Time
}

func NewRenderer(logoPath, company string, log logger.Logger) *Renderer {
	r := &Renderer{
		company: orDefault(company, DefaultCompanyName),
		now:     time.Now,
	}

	if logoPath == "" {
		return r
	}

	lg, err := loadLogo(logoPath)
	if err != nil {
		log.LogAttrs(context.Background(), logger.WarnLevel, "logo unavailable, using text header",
			logger.String("path", logoPath),
			logger.Err(err),
		)
		return r
	}
	r.logo = lg
	return r
}

func loadLogo(path string) (*logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return decodeLogo(data)
}

func decodeLogo(data []byte) (*logo, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	switch format {
	case "png":
		return &logo{data: data, imageType: "PNG"}, nil
	case "jpeg":
		return &logo{data: data, imageType: "JPG"}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

func SpreadsheetFileName(orderID string) string {
	return "PEDIDO_GOLDEN_" + orderID + ".xlsx"
}

func PDFFileName(orderID string) string {
	return "PEDIDO_" + orderID + ".pdf"
}

// ArchiveFileName names the copy of an order PDF kept in object storage.
func ArchiveFileName(orderID string, at time.Time) string {
	return fmt.Sprintf("%s_%d.pdf", orderID, at.UnixMilli())
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// ReceiptFileName uses the signer's first name with every non-alphanumeric
// character replaced by an underscore.
func ReceiptFileName(orderID, signer string, at time.Time) string {
	first := ""
	if fields := strings.Fields(signer); len(fields) > 0 {
		first = nonAlnum.ReplaceAllString(fields[0], "_")
	}
	return fmt.Sprintf("Aceite_Pedido_%s_%s_%d.pdf", orderID, first, at.UnixMilli())
}

// NewIntegrityToken builds SHA.<base36 ms>.<6 random base36 chars>, both
// upper-cased. A positive logID appends .LOG<logID>.
func NewIntegrityToken(at time.Time, logID int64) string {
	token := "SHA." + strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36)) + "." + randomBase36(6)
	return WithLogID(token, logID)
}

func WithLogID(token string, logID int64) string {
	if logID <= 0 {
		return token
	}
	return fmt.Sprintf("%s.LOG%d", token, logID)
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(_base36Upper)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			idx = big.NewInt(time.Now().UnixNano() % int64(len(_base36Upper)))
		}
		b[i] = _base36Upper[idx.Int64()]
	}
	return string(b)
}

// WhatsAppLink opens a chat with phone, or the customer's phone when empty,
// prefilled with an order summary. Numbers without a country code get 55.
func WhatsAppLink(order *entity.Order, phone string) string {
	digits := brdoc.Digits(orDefault(phone, order.Customer.Phone))
	if len(digits) <= 11 {
		digits = "55" + digits
	}

	msg := fmt.Sprintf("*FORMULÁRIO DE PEDIDO - GOLDEN EQUIPAMENTOS MÉDICOS*\n\n"+
		"Olá %s,\n"+
		"Segue o registro do seu pedido Nº *%s*.\n\n"+
		"*Resumo do Formulário:*\n"+
		"Itens: %d\n"+
		"Total Líquido: *%s*\n\n"+
		"*Logística:*\n"+
		"Entrega Estimada: %s\n\n"+
		"Vendedor: %s",
		order.Customer.Name,
		order.ID,
		len(order.Items),
		brdoc.FormatCurrency(order.Currency.Symbol(), order.GlobalValue2),
		order.DeliveryTime,
		order.Salesperson,
	)

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, escape(msg))
}

// MailtoLink addresses email, or the customer's e-mail when empty.
func MailtoLink(order *entity.Order, email, body string) string {
	to := orDefault(email, order.Customer.Email)
	subject := "Proposta Comercial - Pedido " + order.ID
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, escape(subject), escape(body))
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
