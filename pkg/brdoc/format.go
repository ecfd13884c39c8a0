package brdoc

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCPF masks 11 digits as ddd.ddd.ddd-dd. Other inputs are returned as is.
func FormatCPF(cpf string) string {
	d := Digits(cpf)
	if len(d) != cpfLength {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ masks 14 digits as dd.ddd.ddd/dddd-dd.
func FormatCNPJ(cnpj string) string {
	d := Digits(cnpj)
	if len(d) != cnpjLength {
		return cnpj
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func FormatDocument(doc string) string {
	switch len(Digits(doc)) {
	case cpfLength:
		return FormatCPF(doc)
	case cnpjLength:
		return FormatCNPJ(doc)
	default:
		return doc
	}
}

// FormatPhone masks mobiles as (dd) ddddd-dddd and landlines as (dd) dddd-dddd.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case phoneMobile:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case phoneFixed:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return phone
	}
}

func FormatCEP(cep string) string {
	d := Digits(cep)
	if len(d) != cepLength {
		return cep
	}
	return d[0:5] + "-" + d[5:8]
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// FormatDate renders an ISO date as DD/MM/YYYY. Unparseable input is returned
// unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// FormatMoney renders v with two decimals in pt-BR notation: 1.234,56.
func FormatMoney(v decimal.Decimal) string {
	s := v.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatCurrency prefixes FormatMoney with the currency symbol.
func FormatCurrency(symbol string, v decimal.Decimal) string {
	return symbol + " " + FormatMoney(v)
}
