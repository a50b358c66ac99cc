package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"mortgage-afford/domain"
	"mortgage-afford/obs"
)

const (
	advisorMaxTokens = 300
	disclaimer       = "Mortgage insurance, property taxes and homeowners insurance are not included in these estimates."
)

// chatCompleter is the slice of the OpenAI client the advisor needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AdvisorService turns an affordability estimate into a short plain-language
// explanation. Without an API key it always uses the built-in text.
type AdvisorService struct {
	client  chatCompleter
	model   string
	enabled bool
}

func NewAdvisorService(apiKey, model string) *AdvisorService {
	if apiKey == "" {
		return &AdvisorService{model: model}
	}
	return &AdvisorService{
		client:  openai.NewClient(apiKey),
		model:   model,
		enabled: true,
	}
}

// ExplainAffordability always returns text; LLM failures are logged and
// replaced by the fallback explanation.
func (s *AdvisorService) ExplainAffordability(
	ctx context.Context,
	input domain.AffordabilityInput,
	maxPrice float64,
) string {
	if !s.enabled {
		return fallbackExplanation(input, maxPrice)
	}

	prompt := fmt.Sprintf(`Explain this home affordability estimate to a first-time buyer.

PARAMETERS:
- Maximum monthly payment (principal and interest): $%.2f
- Down payment: $%.2f
- Annual interest rate: %.2f%%
- Term: %d years

RESULT:
- Maximum purchase price: $%.2f
- Amount financed: $%.2f

INSTRUCTIONS:
1. Explain in 3-4 sentences how the payment, rate and down payment combine into this price.
2. Mention how a one point change in the rate would move the price.
3. State that mortgage insurance and taxes are not included.`,
		input.MaxMonthlyPayment, input.DownPayment, input.AnnualRatePercent, input.TermYears,
		maxPrice, maxPrice-input.DownPayment)

	explanation, err := s.complete(ctx, prompt)
	if err != nil {
		obs.Logger.Warn().Err(err).Msg("advisor_fallback")
		return fallbackExplanation(input, maxPrice)
	}
	return explanation
}

func (s *AdvisorService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a careful mortgage educator. You explain estimates clearly, never promise loan approval, and keep figures exactly as given.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: advisorMaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from advisor model")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from advisor model")
	}
	return text, nil
}

func fallbackExplanation(input domain.AffordabilityInput, maxPrice float64) string {
	financed := maxPrice - input.DownPayment
	return fmt.Sprintf(
		"With a monthly payment of $%.2f at %.2f%% over %d years you can finance about $%.2f. "+
			"Adding your $%.2f down payment puts your maximum purchase price near $%.2f. %s",
		input.MaxMonthlyPayment, input.AnnualRatePercent, input.TermYears, financed,
		input.DownPayment, maxPrice, disclaimer)
}
