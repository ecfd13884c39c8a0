package assist_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"goldenorders/pkg/assist"
	mock_assist "goldenorders/pkg/assist/mock"
	mock_logger "goldenorders/pkg/logger/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAssistant_RewriteDescription(t *testing.T) {
	t.Parallel()

	const original = "monitor multiparametro"

	testCases := []struct {
		desc     string
		input    string
		mocks    func(g *mock_assist.MockGenerator, l *mock_logger.MockLogger)
		expected string
	}{
		{
			desc:  "returns trimmed rewrite",
			input: original,
			mocks: func(g *mock_assist.MockGenerator, _ *mock_logger.MockLogger) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any(), float32(0.7), int32(100), int32(50)).
					DoAndReturn(func(_ context.Context, prompt string, _ float32, _, _ int32) (string, error) {
						assert.True(t, strings.Contains(prompt, original))
						return "  Monitor multiparamétrico de sinais vitais \n", nil
					})
			},
			expected: "Monitor multiparamétrico de sinais vitais",
		},
		{
			desc:  "error keeps original",
			input: original,
			mocks: func(g *mock_assist.MockGenerator, l *mock_logger.MockLogger) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("quota exceeded"))
				l.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
			expected: original,
		},
		{
			desc:  "empty answer keeps original",
			input: original,
			mocks: func(g *mock_assist.MockGenerator, l *mock_logger.MockLogger) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("   ", nil)
				l.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
			expected: original,
		},
		{
			desc:     "blank input skips generation",
			input:    "  ",
			mocks:    func(*mock_assist.MockGenerator, *mock_logger.MockLogger) {},
			expected: "  ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			gen := mock_assist.NewMockGenerator(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			tc.mocks(gen, log)

			a := assist.New(gen, time.Second, log)
			assert.Equal(t, tc.expected, a.RewriteDescription(context.Background(), tc.input))
		})
	}
}

func TestAssistant_ProposalMessage(t *testing.T) {
	t.Parallel()

	t.Run("prompt carries order summary", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		gen := mock_assist.NewMockGenerator(ctrl)
		gen.EXPECT().Generate(gomock.Any(), gomock.Any(), float32(0.8), int32(300), int32(100)).
			DoAndReturn(func(_ context.Context, prompt string, _ float32, _, _ int32) (string, error) {
				assert.Contains(t, prompt, "Hospital Santa Luzia")
				assert.Contains(t, prompt, "R$ 1500.50")
				assert.Contains(t, prompt, "Desfibrilador, Oxímetro")
				return "Prezados, segue proposta.", nil
			})

		a := assist.New(gen, time.Second, mock_logger.NewMockLogger(ctrl))
		got := a.ProposalMessage(context.Background(), "Hospital Santa Luzia",
			decimal.RequireFromString("1500.5"), []string{"Desfibrilador", "Oxímetro"})
		assert.Equal(t, "Prezados, segue proposta.", got)
	})

	t.Run("disabled generator falls back", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		a := assist.New(nil, time.Second, mock_logger.NewMockLogger(ctrl))
		assert.Equal(t, assist.FallbackProposal,
			a.ProposalMessage(context.Background(), "X", decimal.Zero, nil))
	})
}
