package document

import (
	"fmt"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/pricing"
	"goldenorders/pkg/brdoc"
)

// Signer is the party that accepted an order.
type Signer struct {
	Name      string
	Document  string
	Signature string
	SignedAt  time.Time
}

var ratification = []string{
	"As especificações técnicas e quantidades dos produtos/serviços;",
	"Os valores, prazos e condições comerciais estabelecidos;",
	"A validade jurídica desta assinatura digital como meio de comprovação de aceite.",
}

// AcceptanceReceiptPDF renders the signed acceptance of order. token is the
// integrity token printed in the footer.
func (r *Renderer) AcceptanceReceiptPDF(order *entity.Order, signer Signer, token string) ([]byte, error) {
	const op = "document.AcceptanceReceiptPDF"

	p := r.newPage("COMPROVANTE DE ACEITE", "Aceite "+order.ID)
	p.font("", 9, [3]int{100, 100, 100})
	p.textRight(p.width-_margin, 27, "Documento assinado digitalmente")

	p.y = 45
	p.summaryBox(order)
	p.y += 70

	p.declaration(order, signer)
	p.signatureBox(signer)

	p.font("", 8, [3]int{150, 150, 150})
	p.text(_margin, p.y, "Registro de Aceite Digital: "+signer.SignedAt.Format("02/01/2006 15:04:05"))
	p.text(_margin, p.y+5, "Hash de Integridade: "+token)
	p.textCenter(p.width/2, p.height-12, r.company+" | Comprovante Gerado Automaticamente pelo Sistema")

	out, err := p.bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, entity.ErrRender, err)
	}
	return out, nil
}

func (p *page) summaryBox(order *entity.Order) {
	const (
		left       = 25.0
		leftValue  = 55.0
		rightLabel = 115.0
		rightValue = 150.0
	)

	top := p.y
	p.pdf.SetFillColor(panelFill[0], panelFill[1], panelFill[2])
	p.pdf.SetDrawColor(226, 232, 240)
	p.pdf.SetLineWidth(0.2)
	p.pdf.RoundedRect(_margin, top, 170, 60, 2, "1234", "FD")

	slate := [3]int{100, 116, 139}
	p.font("B", 9, slate)
	p.text(left, top+8, "Cliente:")
	p.text(left, top+16, "Identificador:")
	p.text(left, top+24, "Data de Referência:")
	p.text(left, top+32, "Finalidade:")

	symbol := order.Currency.Symbol()
	totals := pricing.Compute(pricing.InputFrom(order))

	p.text(rightLabel, top+8, "Valor Total:")
	p.text(rightValue, top+8, brdoc.FormatCurrency(symbol, totals.GlobalValue2))

	offset := 16.0
	if order.DownPayment.IsPositive() {
		p.text(rightLabel, top+offset, "Valor de Entrada:")
		p.text(rightValue, top+offset, brdoc.FormatCurrency("R$", order.DownPayment))
		offset += 8
		p.text(rightLabel, top+offset, "Saldo a Pagar:")
		p.text(rightValue, top+offset, brdoc.FormatCurrency("R$", totals.BalanceDue))
		offset += 8
	}

	p.text(rightLabel, top+offset, "Condições Pagto:")
	p.font("", 9, slate)
	terms := p.wrap(orDefault(order.PaymentTerms, "-"), 35)
	for i, line := range terms {
		p.pdf.Text(rightValue, top+offset+float64(i)*4, line)
	}
	offset += float64(len(terms))*4 + 4

	p.font("B", 9, slate)
	p.text(rightLabel, top+offset, "Prazo Entrega:")
	p.font("", 9, slate)
	for i, line := range p.wrap(orDefault(order.DeliveryTime, "-"), 35) {
		p.pdf.Text(rightValue, top+offset+float64(i)*4, line)
	}

	p.font("B", 8, [3]int{})
	for i, line := range p.wrap(order.Customer.Name, 55) {
		p.pdf.Text(leftValue, top+8+float64(i)*3.5, line)
	}

	p.font("B", 9, [3]int{})
	p.text(leftValue, top+16, order.ID)
	p.text(leftValue, top+24, orDefault(brdoc.FormatDate(order.Date), "-"))

	purpose := string(order.Classification)
	if purpose == "" {
		purpose = string(entity.ClassificationSale)
	}
	if order.Classification == entity.ClassificationOther && order.ClassificationOther != "" {
		purpose += " - " + order.ClassificationOther
	}
	p.text(leftValue, top+32, purpose)
}

func (p *page) declaration(order *entity.Order, signer Signer) {
	p.font("B", 12, [3]int{})
	p.text(_margin, p.y, "Declaração de Aceite")
	p.y += 8

	p.font("", 10, darkText)
	text := fmt.Sprintf("Eu, %s, inscrito(a) no CPF/CNPJ sob o nº %s, na qualidade de representante "+
		"devidamente autorizado(a), declaro para os devidos fins que recebi, analisei e APROVEI "+
		"integralmente a Proposta Comercial nº %s apresentada pela %s.",
		signer.Name, brdoc.FormatDocument(signer.Document), order.ID, p.r.company)

	for _, line := range p.wrap(text, 170) {
		p.pdf.Text(_margin, p.y, line)
		p.y += 5
	}
	p.y += 8

	p.text(_margin, p.y, "Ratifico minha concordância com:")
	p.y += 6

	p.font("", 9, darkText)
	for _, item := range ratification {
		p.text(25, p.y, "• "+item)
		p.y += 5
	}
	p.y += 10
}

func (p *page) signatureBox(signer Signer) {
	p.ensureSpace(70)

	top := p.y
	p.pdf.SetDrawColor(180, 180, 180)
	p.pdf.SetLineWidth(0.1)
	p.pdf.Rect(_margin, top, 170, 50, "D")

	p.font("", 9, [3]int{150, 150, 150})
	p.textRight(185, top+5, "Área de Assinatura Eletrônica")

	p.font("", 12, [3]int{})
	p.text(30, top+15, "Assinado por:")

	p.pdf.SetFont("Times", "I", 24)
	p.text(30, top+30, signer.Signature)

	p.font("", 10, [3]int{})
	p.text(30, top+42, "Doc: "+brdoc.FormatDocument(signer.Document))

	p.y = top + 60
}
