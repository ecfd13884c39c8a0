// Package brdoc validates and formats Brazilian identifiers: CPF, CNPJ,
// phone numbers and postal codes (CEP).
package brdoc

import (
	"strconv"
	"strings"
)

const (
	cpfLength   = 11
	cnpjLength  = 14
	cepLength   = 8
	phoneFixed  = 10
	phoneMobile = 11
	minDDD      = 11
	maxDDD      = 99
)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidDocument accepts a CPF (11 digits) or a CNPJ (14 digits) in any
// punctuation.
func IsValidDocument(doc string) bool {
	d := Digits(doc)
	switch len(d) {
	case cpfLength:
		return IsValidCPF(d)
	case cnpjLength:
		return IsValidCNPJ(d)
	default:
		return false
	}
}

func IsValidCPF(cpf string) bool {
	d := Digits(cpf)
	if len(d) != cpfLength || allSame(d) {
		return false
	}

	first := cpfCheckDigit(d[:9], 10)
	if first != int(d[9]-'0') {
		return false
	}
	second := cpfCheckDigit(d[:10], 11)
	return second == int(d[10]-'0')
}

func cpfCheckDigit(base string, startWeight int) int {
	sum := 0
	for i, r := range base {
		sum += int(r-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest
}

func IsValidCNPJ(cnpj string) bool {
	d := Digits(cnpj)
	if len(d) != cnpjLength || allSame(d) {
		return false
	}

	if cnpjCheckDigit(d[:12], cnpjFirstWeights) != int(d[12]-'0') {
		return false
	}
	return cnpjCheckDigit(d[:13], cnpjSecondWeights) == int(d[13]-'0')
}

// CompleteCNPJ appends both check digits to a 12-digit base. Other inputs
// are returned unchanged.
func CompleteCNPJ(base string) string {
	d := Digits(base)
	if len(d) != cnpjLength-2 {
		return base
	}
	d += strconv.Itoa(cnpjCheckDigit(d, cnpjFirstWeights))
	return d + strconv.Itoa(cnpjCheckDigit(d, cnpjSecondWeights))
}

func cnpjCheckDigit(base string, weights []int) int {
	sum := 0
	for i, r := range base {
		sum += int(r-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// ValidatePhone accepts 10-digit landlines and 11-digit mobiles with a valid
// area code. Mobiles must carry the leading 9 after the area code.
func ValidatePhone(phone string) bool {
	d := Digits(phone)
	if len(d) != phoneFixed && len(d) != phoneMobile {
		return false
	}

	ddd := int(d[0]-'0')*10 + int(d[1]-'0')
	if ddd < minDDD || ddd > maxDDD {
		return false
	}

	if len(d) == phoneMobile && d[2] != '9' {
		return false
	}
	return true
}

func ValidateCEP(cep string) bool {
	return len(Digits(cep)) == cepLength
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
