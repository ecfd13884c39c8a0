package document

import (
	"bytes"
	"fmt"
	"strings"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	_margin        = 20.0
	_headerBottom  = 50.0
	_bottomReserve = 20.0
	_logoName      = "logo"
)

var (
	gold      = [3]int{184, 134, 11}
	darkText  = [3]int{50, 50, 50}
	ruleGray  = [3]int{200, 200, 200}
	panelFill = [3]int{248, 250, 252}
	tableHead = [3]int{30, 41, 59}
	stripe    = [3]int{245, 245, 245}
)

var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"IT", 8, "C"},
	{"PRODUTO", 90, "L"},
	{"UN", 10, "C"},
	{"QTD", 10, "C"},
	{"UNITÁRIO", 25, "R"},
	{"TOTAL", 25, "R"},
}

// page wraps fpdf with a running cursor and a cp1252 translator so accented
// labels render with the core fonts.
type page struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	width  float64
	height float64
	y      float64
	title  string
	r      *Renderer
}

func (r *Renderer) newPage(title, subject string) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(r.now())
	pdf.SetTitle(subject, true)
	pdf.SetAuthor(r.company, true)

	if r.logo != nil {
		pdf.RegisterImageOptionsReader(_logoName, fpdf.ImageOptions{ImageType: r.logo.imageType}, bytes.NewReader(r.logo.data))
	}

	w, h := pdf.GetPageSize()
	p := &page{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  w,
		height: h,
		title:  title,
		r:      r,
	}
	p.addPage()
	return p
}

func (p *page) addPage() {
	p.pdf.AddPage()
	p.header()
	p.font("", 9, [3]int{})
	p.y = _headerBottom
}

func (p *page) header() {
	if p.r.logo != nil {
		p.pdf.ImageOptions(_logoName, _margin, 10, 50, 20, false, fpdf.ImageOptions{ImageType: p.r.logo.imageType}, 0, "")
	} else {
		p.font("B", 16, gold)
		p.text(_margin, 25, _fallbackBrand)
	}

	p.font("B", 18, darkText)
	p.textRight(p.width-_margin, 22, p.title)

	p.pdf.SetDrawColor(gold[0], gold[1], gold[2])
	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(_margin, 35, p.width-_margin, 35)
}

// ensureSpace starts a new page when n more millimetres would cross the
// bottom reserve.
func (p *page) ensureSpace(n float64) bool {
	if p.y+n > p.height-_bottomReserve {
		p.addPage()
		return true
	}
	return false
}

func (p *page) font(style string, size float64, color [3]int) {
	p.pdf.SetFont("Helvetica", style, size)
	p.pdf.SetTextColor(color[0], color[1], color[2])
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) textRight(x, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(s), y, s)
}

func (p *page) textCenter(x, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(s)/2, y, s)
}

// wrap splits s into lines no wider than w at the current font.
func (p *page) wrap(s string, w float64) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, p.split(para, w)...)
	}
	return lines
}

// split breaks one paragraph into lines no wider than w. Lines come back in
// the font's cp1252 encoding, so widths are measured per byte.
func (p *page) split(s string, w float64) []string {
	raw := p.pdf.SplitLines([]byte(p.tr(s)), w)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, string(line))
	}
	return lines
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OrderPDF renders the order form.
func (r *Renderer) OrderPDF(order *entity.Order) ([]byte, error) {
	const op = "document.OrderPDF"

	out, err := r.orderPage(order).bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, entity.ErrRender, err)
	}
	return out, nil
}

func (r *Renderer) orderPage(order *entity.Order) *page {
	p := r.newPage("FORMULÁRIO DE PEDIDO", "Pedido "+order.ID)
	symbol := order.Currency.Symbol()

	p.orderBlock(order)
	p.customerBlock(order.Customer)
	p.addressBlocks(order.Customer)
	p.contactsBlock(order.Contacts)
	p.itemTable(order.Items, symbol)
	p.financialBox(order, symbol)
	p.termsBlock(order, symbol)
	p.biddingBlock(order)
	p.notesBlock(order.Notes)

	p.font("", 7, [3]int{150, 150, 150})
	p.textCenter(p.width/2, p.height-15, "Documento gerado em "+r.now().Format("02/01/2006 15:04:05"))

	return p
}

func (p *page) orderBlock(order *entity.Order) {
	p.font("B", 10, [3]int{})
	p.text(_margin, p.y, "PEDIDO Nº: "+order.ID)
	p.textRight(p.width-_margin, p.y, "DATA: "+brdoc.FormatDate(order.Date))
	p.y += 6
	p.text(_margin, p.y, "VENDEDOR: "+order.Salesperson)

	if order.Classification != "" {
		p.y += 6
		p.font("", 9, [3]int{})
		purpose := string(order.Classification)
		if order.ClassificationOther != "" {
			purpose += " - " + order.ClassificationOther
		}
		p.text(_margin, p.y, "FINALIDADE: "+purpose)
	}
	p.y += 8
}

func (p *page) customerBlock(c entity.CustomerInfo) {
	p.pdf.SetDrawColor(ruleGray[0], ruleGray[1], ruleGray[2])
	p.pdf.SetLineWidth(0.2)
	p.pdf.Line(_margin, p.y, p.width-_margin, p.y)
	p.y += 8

	p.font("B", 11, [3]int{})
	p.text(_margin, p.y, "DADOS DO CLIENTE")
	p.y += 6

	p.font("", 9, [3]int{})
	p.text(_margin, p.y, "Razão Social: "+c.Name)
	p.text(110, p.y, "Telefone: "+brdoc.FormatPhone(c.Phone))
	p.y += 5
	p.text(_margin, p.y, "CNPJ/CPF: "+brdoc.FormatDocument(c.Document))
	p.text(110, p.y, "E-mail: "+c.Email)
	p.y += 5
	p.text(_margin, p.y, "Insc. Estadual: "+orDefault(c.StateRegistration, "Isento"))
	if c.MunicipalRegistration != "" {
		p.text(110, p.y, "Insc. Municipal: "+c.MunicipalRegistration)
	}
	p.y += 5
	if c.RG != "" {
		p.text(_margin, p.y, "RG: "+c.RG)
		p.y += 5
	}
	p.y += 3
}

func (p *page) addressBlocks(c entity.CustomerInfo) {
	p.address("ENDEREÇO DE FATURAMENTO", c.BillingAddress)

	if !c.CollectionAddress.IsZero() && c.CollectionAddress.Street != c.BillingAddress.Street {
		p.address("ENDEREÇO DE COLETA", c.CollectionAddress)
	}
	if !c.DeliveryAddress.IsZero() && c.DeliveryAddress.Street != c.BillingAddress.Street {
		p.address("ENDEREÇO DE ENTREGA", c.DeliveryAddress)
	}
}

func (p *page) address(title string, a entity.Address) {
	p.ensureSpace(23)

	p.font("B", 9, [3]int{})
	p.text(_margin, p.y, title)
	p.y += 5

	p.font("", 9, [3]int{})
	line := a.Street
	if a.Number != "" {
		line += ", " + a.Number
	}
	if a.Complement != "" {
		line += " - " + a.Complement
	}
	p.text(_margin, p.y, line)
	p.y += 5

	place := a.City
	if a.State != "" {
		place += "/" + a.State
	}
	if a.Neighborhood != "" {
		place = a.Neighborhood + " - " + place
	}
	p.text(_margin, p.y, place)
	p.y += 5
	p.text(_margin, p.y, "CEP: "+brdoc.FormatCEP(a.ZipCode))
	p.y += 8
}

func (p *page) contactsBlock(contacts []*entity.Contact) {
	if len(contacts) == 0 {
		return
	}
	p.ensureSpace(30)

	p.font("B", 9, [3]int{})
	p.text(_margin, p.y, "CONTATOS")
	p.y += 5

	p.font("", 9, [3]int{})
	for i, ct := range contacts {
		if ct == nil {
			continue
		}
		if i > 0 {
			p.y += 3
		}
		p.ensureSpace(8)
		p.text(_margin, p.y, ct.Name+" - "+orDefault(ct.JobTitle, "N/A"))
		p.y += 4
		p.text(_margin, p.y, "Tel: "+brdoc.FormatPhone(ct.Phone)+" | Email: "+ct.Email)
		p.y += 4
	}
	p.y += 5
}

const _rowLine = 3.5

func (p *page) itemTable(items []*entity.Item, symbol string) {
	p.ensureSpace(50)
	p.tableHeader()

	for i, item := range items {
		if item == nil {
			continue
		}

		p.font("", 7, [3]int{})
		desc := p.split(item.Description, itemColumns[1].width-2)
		if len(desc) == 0 {
			desc = []string{""}
		}
		h := float64(len(desc))*_rowLine + 2

		if p.ensureSpace(h) {
			p.tableHeader()
			p.font("", 7, [3]int{})
		}

		fill := i%2 == 1
		if fill {
			p.pdf.SetFillColor(stripe[0], stripe[1], stripe[2])
			p.pdf.Rect(_margin, p.y, tableWidth(), h, "F")
		}

		cells := []string{
			fmt.Sprintf("%d", i+1),
			"",
			orDefault(item.Unit, "UN"),
			item.Quantity.String(),
			brdoc.FormatCurrency(symbol, item.UnitPrice),
			brdoc.FormatCurrency(symbol, item.Total),
		}

		x := _margin
		for c, col := range itemColumns {
			p.pdf.SetXY(x, p.y)
			if c == 1 {
				for l, line := range desc {
					p.pdf.SetXY(x, p.y+1+float64(l)*_rowLine)
					p.pdf.CellFormat(col.width, _rowLine, line, "", 0, "L", false, 0, "")
				}
			} else {
				p.pdf.CellFormat(col.width, h, p.tr(cells[c]), "", 0, col.align, false, 0, "")
			}
			x += col.width
		}
		p.y += h
	}
	p.y += 10
}

func (p *page) tableHeader() {
	p.pdf.SetFillColor(tableHead[0], tableHead[1], tableHead[2])
	p.font("B", 7, [3]int{255, 255, 255})

	x := _margin
	for _, col := range itemColumns {
		p.pdf.SetXY(x, p.y)
		p.pdf.CellFormat(col.width, 6, p.tr(col.title), "", 0, col.align, true, 0, "")
		x += col.width
	}
	p.y += 6
}

func tableWidth() float64 {
	var w float64
	for _, col := range itemColumns {
		w += col.width
	}
	return w
}

func (p *page) financialBox(order *entity.Order, symbol string) {
	p.ensureSpace(50)

	p.pdf.SetFillColor(panelFill[0], panelFill[1], panelFill[2])
	p.pdf.Rect(_margin, p.y, p.width-2*_margin, 45, "F")

	right := p.width - 25
	row := func(y float64, label string, v decimal.Decimal) {
		p.text(25, y, label)
		p.textRight(right, y, brdoc.FormatCurrency(symbol, v))
	}

	p.font("B", 9, [3]int{})
	y := p.y + 7
	row(y, "Subtotal:", order.GlobalValue1)
	y += 6
	row(y, "Descontos:", order.DiscountTotal)
	y += 6
	row(y, "Frete:", order.FreightValue)
	y += 8

	p.font("B", 11, gold)
	row(y, "TOTAL LÍQUIDO:", order.GlobalValue2)
	y += 6

	if order.IsForeign() && order.ExchangeRate.IsPositive() {
		p.font("B", 8, [3]int{100, 100, 100})
		y += 5
		p.text(25, y, "Taxa de Câmbio: "+order.ExchangeRate.String())
		y += 5
		p.text(25, y, "Equiv. em R$: "+brdoc.FormatCurrency("R$", order.TotalInBRL))
	}

	p.y += 50
}

func (p *page) termsBlock(order *entity.Order, symbol string) {
	p.ensureSpace(40)

	p.font("B", 10, [3]int{})
	p.text(_margin, p.y, "CONDIÇÕES COMERCIAIS")
	p.y += 6

	p.font("", 9, [3]int{})
	line := func(s string) {
		p.ensureSpace(5)
		p.text(_margin, p.y, s)
		p.y += 5
	}

	if order.DownPayment.IsPositive() {
		line("Valor de Entrada: " + brdoc.FormatCurrency("R$", order.DownPayment))
	}
	line("Condições de Pagamento: " + order.PaymentTerms)
	line("Prazo de Entrega: " + order.DeliveryTime)
	line("Validade da Proposta: " + order.Validity)
	if order.ValidUntil != "" {
		line("Válido até: " + brdoc.FormatDate(order.ValidUntil))
	}
	if order.PaymentMethod != "" {
		line("Forma de Pagamento: " + order.PaymentMethod)
	}
	if order.Carrier != "" {
		line("Transportadora: " + order.Carrier)
	}
	if order.ShippingType != "" {
		line("Tipo de Frete: " + string(order.ShippingType))
	}
	if order.MinBilling {
		line("Faturamento Mínimo: " + brdoc.FormatCurrency(symbol, order.MinBillingValue))
	}
	if order.FinalCustomer {
		line("Cliente Final: Sim")
	}
}

func (p *page) biddingBlock(order *entity.Order) {
	if order.BiddingNumber == "" && order.CommitmentNumber == "" {
		return
	}
	p.y += 5
	p.ensureSpace(16)

	p.font("B", 9, [3]int{})
	p.text(_margin, p.y, "DADOS DE LICITAÇÃO")
	p.y += 6

	p.font("", 9, [3]int{})
	pair := func(label, number, date string) {
		if number == "" {
			return
		}
		p.text(_margin, p.y, label+number)
		if date != "" {
			p.text(110, p.y, "Data: "+brdoc.FormatDate(date))
		}
		p.y += 5
	}
	pair("Nº Licitação: ", order.BiddingNumber, order.BiddingDate)
	pair("Nº Empenho: ", order.CommitmentNumber, order.CommitmentDate)
}

func (p *page) notesBlock(notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	p.y += 8
	p.ensureSpace(30)

	p.font("B", 9, [3]int{})
	p.text(_margin, p.y, "OBSERVAÇÕES")
	p.y += 6

	p.font("", 9, [3]int{})
	for _, line := range p.wrap(notes, p.width-2*_margin) {
		p.ensureSpace(5)
		p.font("", 9, [3]int{})
		p.pdf.Text(_margin, p.y, line)
		p.y += 5
	}
}
