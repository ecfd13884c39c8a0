package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goldenorders/pkg/logger"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

//go:generate mockgen -source=assist.go -destination=mock/assist.go -package=mock_assist

const FallbackProposal = "Olá, segue em anexo o orçamento solicitado."

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens, thinkingBudget int32) (string, error)
}

// Assistant drafts commercial text. Every failure degrades to a fixed
// fallback so callers never see an error.
type Assistant struct {
	gen     Generator
	timeout time.Duration
	log     logger.Logger
}

func New(gen Generator, timeout time.Duration, log logger.Logger) *Assistant {
	return &Assistant{gen: gen, timeout: timeout, log: log}
}

// RewriteDescription returns a more professional item description, or the
// original text when generation is unavailable.
func (a *Assistant) RewriteDescription(ctx context.Context, description string) string {
	if strings.TrimSpace(description) == "" {
		return description
	}

	prompt := "Melhore e profissionalize a seguinte descrição de item para um orçamento comercial. " +
		"Seja conciso e use termos técnicos adequados se necessário. " +
		fmt.Sprintf("Descrição original: %q", description)

	out, ok := a.generate(ctx, "assist.RewriteDescription", prompt, 0.7, 100, 50)
	if !ok {
		return description
	}
	return out
}

// ProposalMessage drafts an e-mail body presenting an order to its customer.
func (a *Assistant) ProposalMessage(
	ctx context.Context,
	customer string,
	total decimal.Decimal,
	items []string,
) string {
	prompt := fmt.Sprintf(
		"Crie um texto persuasivo de apresentação (corpo de email) para este orçamento. "+
			"Cliente: %s. Valor Total: R$ %s. Itens inclusos: %s.",
		customer, total.StringFixed(2), strings.Join(items, ", "),
	)

	out, ok := a.generate(ctx, "assist.ProposalMessage", prompt, 0.8, 300, 100)
	if !ok {
		return FallbackProposal
	}
	return out
}

func (a *Assistant) generate(
	ctx context.Context,
	op, prompt string,
	temperature float32,
	maxTokens, thinkingBudget int32,
) (string, bool) {
	if a.gen == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.gen.Generate(ctx, prompt, temperature, maxTokens, thinkingBudget)
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		a.log.LogAttrs(ctx, logger.WarnLevel, "text generation unavailable, using fallback",
			logger.String("op", op),
			logger.Err(err),
		)
		return "", false
	}
	return out, true
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGemini returns nil when apiKey is empty, which disables generation.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assist.NewGemini: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(
	ctx context.Context,
	prompt string,
	temperature float32,
	maxTokens, thinkingBudget int32,
) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(thinkingBudget)},
	})
	if err != nil {
		return "", fmt.Errorf("assist.GeminiGenerator.Generate: %w", err)
	}
	return resp.Text(), nil
}
