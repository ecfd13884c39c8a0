package document

import (
	"fmt"
	"io"
	"strings"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	_sheetName = "Pedido"

	_firstItemRow = 35
	// Rows 35-37 are reserved for items; longer lists push the summary down.
	_reservedItemRows = 3
	_summaryRow       = 38
)

var classificationCells = map[entity.Classification]string{
	entity.ClassificationSale:        "B30",
	entity.ClassificationDemo:        "C30",
	entity.ClassificationExhibition:  "D30",
	entity.ClassificationConsignment: "E30",
	entity.ClassificationDonation:    "F30",
	entity.ClassificationOther:       "G30",
}

type addressCells struct {
	street, number, complement, neighborhood, zip, city, state string
}

var (
	billingCells = addressCells{
		street: "B4", number: "B5", complement: "C5", neighborhood: "E5",
		city: "B6", state: "D6",
	}
	// The collection and delivery blocks have no street cell.
	collectionCells = addressCells{
		number: "B13", complement: "C13", neighborhood: "E13", city: "I13",
		state: "B14", zip: "D14",
	}
	deliveryCells = addressCells{
		number: "B17", complement: "C17", neighborhood: "E17", city: "I17",
		state: "B18", zip: "D18",
	}
)

var staticLabels = map[string]string{
	"A1":  "FORMULÁRIO DE PEDIDO",
	"A2":  "DADOS PARA FATURAMENTO",
	"A3":  "Razão Social",
	"A4":  "Endereço",
	"A5":  "Nº",
	"A6":  "Cidade",
	"A7":  "CNPJ/CPF",
	"A8":  "Insc. Estadual",
	"A9":  "Telefone",
	"A10": "E-mail",
	"H10": "Vendedor",
	"A12": "ENDEREÇO PARA COBRANÇA",
	"A16": "ENDEREÇO PARA ENTREGA",
	"A20": "CONTATOS",
	"A29": "FINALIDADE",
	"F31": "Pedido nº",
	"F32": "Data",
	"A34": "ITEM",
	"B34": "QTD",
	"C34": "DESCRIÇÃO",
	"G34": "VALOR UNIT.",
	"I34": "VALOR TOTAL",
}

// Labels below the item table move with the summary block.
var summaryLabels = map[int][2]string{
	38: {"H", "Valor Global 1"},
	40: {"H", "Descontos"},
	41: {"H", "Frete"},
	42: {"H", "Valor Global 2"},
	44: {"A", "Conversão"},
	47: {"A", "Faturamento mínimo"},
	48: {"A", "Cliente final"},
	49: {"A", "Forma de pagamento"},
	50: {"A", "Prazo de entrega"},
	51: {"A", "Validade"},
	52: {"A", "Licitação nº"},
	53: {"A", "Empenho nº"},
	55: {"A", "Assinatura"},
	57: {"A", "Enviar para"},
}

func summaryShift(items int) int {
	return max(0, items-_reservedItemRows)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Spreadsheet renders order onto the paper-form cell grid.
func (r *Renderer) Spreadsheet(order *entity.Order) ([]byte, error) {
	const op = "document.Spreadsheet"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", _sheetName); err != nil {
		return nil, fmt.Errorf("%s: rename sheet: %w: %w", op, entity.ErrRender, err)
	}

	w := &sheetWriter{f: f}
	shift := summaryShift(len(order.Items))

	for addr, label := range staticLabels {
		w.set(addr, label)
	}
	for row, label := range summaryLabels {
		w.set(cell(label[0], row+shift), label[1])
	}

	c := order.Customer
	w.set("B3", c.Name)
	w.address(billingCells, c.BillingAddress)
	w.set("B7", brdoc.FormatDocument(c.Document))
	w.set("G7", c.RG)
	w.set("B8", orDefault(c.StateRegistration, "ISENTO"))
	w.set("E8", c.MunicipalRegistration)
	w.set("B9", brdoc.FormatPhone(c.Phone))
	w.set("B10", c.Email)
	w.set("I10", order.Salesperson)

	w.address(collectionCells, c.CollectionAddress)
	w.address(deliveryCells, c.DeliveryAddress)

	if len(order.Contacts) > 0 && order.Contacts[0] != nil {
		ct := order.Contacts[0]
		w.set("B21", ct.Name)
		w.set("B22", ct.JobTitle)
		w.set("D22", ct.Department)
		w.set("G22", brdoc.FormatPhone(ct.Phone))
		w.set("B23", ct.Email)
	}
	if len(order.Contacts) > 1 && order.Contacts[1] != nil {
		ct := order.Contacts[1]
		w.set("B25", ct.Name)
		w.set("B26", ct.JobTitle)
		w.set("D26", ct.Department)
		w.set("G26", brdoc.FormatPhone(ct.Phone))
		w.set("B27", ct.Email)
	}

	if addr, ok := classificationCells[order.Classification]; ok {
		w.set(addr, "X")
	}
	w.set("H30", order.ClassificationOther)
	w.set("G31", order.ID)
	w.set("G32", order.Date)

	for i, item := range order.Items {
		row := _firstItemRow + i
		w.setNumber(cell("A", row), decimal.NewFromInt(int64(i+1)))
		w.setNumber(cell("B", row), item.Quantity)
		w.set(cell("C", row), item.Description)
		w.setNumber(cell("G", row), item.UnitPrice)
		w.setNumber(cell("I", row), item.Total)
	}

	at := func(col string, row int) string { return cell(col, row+shift) }

	w.setNumber(at("I", _summaryRow), order.GlobalValue1)
	w.setNumber(at("I", 40), order.DiscountTotal)
	w.setNumber(at("I", 41), order.FreightValue)
	w.setNumber(at("I", 42), order.GlobalValue2)

	if order.IsForeign() {
		w.set(at("E", 44), string(order.Currency))
		w.setNumber(at("G", 44), order.ExchangeRate)
		w.setNumber(at("I", 44), order.TotalInBRL)
	}

	if order.MinBilling {
		w.set(at("D", 47), "X")
		w.setNumber(at("G", 47), order.MinBillingValue)
	} else {
		w.set(at("E", 47), "X")
	}
	if order.FinalCustomer {
		w.set(at("B", 48), "Sim")
	}

	w.set(at("B", 49), order.PaymentTerms)
	w.set(at("B", 50), order.DeliveryTime)
	w.set(at("B", 51), order.Validity)
	w.set(at("B", 52), order.BiddingNumber)
	w.set(at("G", 52), order.BiddingDate)
	w.set(at("B", 53), order.CommitmentNumber)
	w.set(at("G", 53), order.CommitmentDate)
	w.set(at("B", 55), c.Name)
	w.set(at("B", 57), order.Notes)

	if w.err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, entity.ErrRender, w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w: %w", op, entity.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// ImportSpreadsheet reads a workbook produced by Spreadsheet back into a draft
// order. Totals are left for the caller to recompute.
func ImportSpreadsheet(src io.Reader) (*entity.Order, error) {
	const op = "document.ImportSpreadsheet"

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w: %w", op, entity.ErrInvalidData, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets: %w", op, entity.ErrInvalidData)
	}

	rd := &sheetReader{f: f, sheet: sheet}

	order := &entity.Order{
		ID:                  rd.text("G31"),
		Date:                rd.text("G32"),
		Salesperson:         rd.text("I10"),
		ClassificationOther: rd.text("H30"),
		Status:              entity.StatusDraft,
		Currency:            entity.CurrencyReal,
	}

	for _, class := range entity.Classifications {
		if strings.EqualFold(rd.text(classificationCells[class]), "X") {
			order.Classification = class
			break
		}
	}

	order.Customer = entity.CustomerInfo{
		Name:                  rd.text("B3"),
		Document:              brdoc.Digits(rd.text("B7")),
		RG:                    rd.text("G7"),
		StateRegistration:     rd.text("B8"),
		MunicipalRegistration: rd.text("E8"),
		Phone:                 brdoc.Digits(rd.text("B9")),
		Email:                 rd.text("B10"),
		BillingAddress:        rd.address(billingCells),
		CollectionAddress:     rd.address(collectionCells),
		DeliveryAddress:       rd.address(deliveryCells),
	}
	if strings.EqualFold(order.Customer.StateRegistration, "ISENTO") {
		order.Customer.StateRegistration = ""
	}

	for _, rows := range [][5]string{
		{"B21", "B22", "D22", "G22", "B23"},
		{"B25", "B26", "D26", "G26", "B27"},
	} {
		if name := rd.text(rows[0]); name != "" {
			order.Contacts = append(order.Contacts, &entity.Contact{
				Name:       name,
				JobTitle:   rd.text(rows[1]),
				Department: rd.text(rows[2]),
				Phone:      brdoc.Digits(rd.text(rows[3])),
				Email:      rd.text(rows[4]),
			})
		}
	}

	for row := _firstItemRow; ; row++ {
		desc := rd.text(cell("C", row))
		if desc == "" {
			break
		}
		order.Items = append(order.Items, &entity.Item{
			Description: desc,
			Quantity:    rd.number(cell("B", row)),
			UnitPrice:   rd.number(cell("G", row)),
			Total:       rd.number(cell("I", row)),
		})
	}

	shift := summaryShift(len(order.Items))
	at := func(col string, row int) string { return cell(col, row+shift) }

	order.DiscountTotal = rd.number(at("I", 40))
	order.FreightValue = rd.number(at("I", 41))

	if cur := entity.Currency(rd.text(at("E", 44))); cur == entity.CurrencyDollar || cur == entity.CurrencyEuro {
		order.Currency = cur
		order.ExchangeRate = rd.number(at("G", 44))
	}

	if strings.EqualFold(rd.text(at("D", 47)), "X") {
		order.MinBilling = true
		order.MinBillingValue = rd.number(at("G", 47))
	}
	order.FinalCustomer = strings.EqualFold(rd.text(at("B", 48)), "Sim")
	order.PaymentTerms = rd.text(at("B", 49))
	order.DeliveryTime = rd.text(at("B", 50))
	order.Validity = rd.text(at("B", 51))
	order.BiddingNumber = rd.text(at("B", 52))
	order.BiddingDate = rd.text(at("G", 52))
	order.CommitmentNumber = rd.text(at("B", 53))
	order.CommitmentDate = rd.text(at("G", 53))
	order.Notes = rd.text(at("B", 57))

	if rd.err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, entity.ErrInvalidData, rd.err)
	}
	return order, nil
}

type sheetWriter struct {
	f   *excelize.File
	err error
}

// set skips blank values so optional fields leave their cells empty.
func (w *sheetWriter) set(addr, value string) {
	if w.err != nil || value == "" {
		return
	}
	w.err = w.f.SetCellValue(_sheetName, addr, value)
}

func (w *sheetWriter) setNumber(addr string, value decimal.Decimal) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(_sheetName, addr, value.InexactFloat64())
}

func (w *sheetWriter) address(cells addressCells, a entity.Address) {
	if a.IsZero() {
		return
	}
	if cells.street != "" {
		w.set(cells.street, a.Street)
	}
	w.set(cells.number, a.Number)
	if cells.complement != "" {
		w.set(cells.complement, a.Complement)
	}
	w.set(cells.neighborhood, a.Neighborhood)
	if cells.zip != "" {
		w.set(cells.zip, brdoc.FormatCEP(a.ZipCode))
	}
	w.set(cells.city, a.City)
	w.set(cells.state, a.State)
}

type sheetReader struct {
	f     *excelize.File
	sheet string
	err   error
}

func (r *sheetReader) text(addr string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.f.GetCellValue(r.sheet, addr)
	if err != nil {
		r.err = fmt.Errorf("read %s: %w", addr, err)
		return ""
	}
	return strings.TrimSpace(v)
}

func (r *sheetReader) number(addr string) decimal.Decimal {
	raw := r.text(addr)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("parse number at %s (%q): %w", addr, raw, err)
		}
		return decimal.Zero
	}
	return d
}

func (r *sheetReader) address(cells addressCells) entity.Address {
	a := entity.Address{
		Number:       r.text(cells.number),
		Neighborhood: r.text(cells.neighborhood),
		City:         r.text(cells.city),
		State:        r.text(cells.state),
	}
	if cells.street != "" {
		a.Street = r.text(cells.street)
	}
	if cells.complement != "" {
		a.Complement = r.text(cells.complement)
	}
	if cells.zip != "" {
		a.ZipCode = brdoc.Digits(r.text(cells.zip))
	}
	return a
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
