package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"
)

type Result struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type response struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// Client resolves Brazilian postal codes through the ViaCEP web service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the address for an 8-digit CEP. Formatting characters are
// ignored. Unknown codes yield entity.ErrDataNotFound.
func (c *Client) Lookup(ctx context.Context, cep string) (Result, error) {
	const op = "viacep.Lookup"

	digits := brdoc.Digits(cep)
	if len(digits) != 8 {
		return Result{}, fmt.Errorf("%s: cep %q must have 8 digits: %w", op, cep, entity.ErrInvalidData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json/", c.baseURL, digits), nil)
	if err != nil {
		return Result{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%s: request: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return Result{}, fmt.Errorf("%s: cep %s rejected: %w", op, digits, entity.ErrInvalidData)
	case resp.StatusCode != http.StatusOK:
		return Result{}, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var body response
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	// ViaCEP reports unknown codes with "erro": true (older) or "erro": "true".
	if body.Erro != nil && fmt.Sprint(body.Erro) != "false" {
		return Result{}, fmt.Errorf("%s: cep %s: %w", op, digits, entity.ErrDataNotFound)
	}

	return Result{
		ZipCode:      brdoc.FormatCEP(digits),
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
