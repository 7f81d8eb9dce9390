package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"tip-advisor/domain"
)

const suggestionPrompt = `I have a bill of $%s for %d people.
The service was %s.
Can you suggest an appropriate tip percentage and explain why?
Also provide the exact tip amount and total amount to pay.
Please base everything from your own knowledge and the legend of tip percentages.
There should NEVER be a tip prediction of $0.
Keep the response concise and friendly.`

// SuggestionClient turns a TipRequest into a displayable suggestion.
// Failures of the remote call never leave this type as errors.
type SuggestionClient struct {
	generator TextGenerator
}

func NewSuggestionClient(generator TextGenerator) *SuggestionClient {
	return &SuggestionClient{generator: generator}
}

// BuildPrompt embeds the request into the fixed prompt template. The amount
// is not rounded and the service quality label goes in as-is; the model
// interprets both.
func BuildPrompt(req domain.TipRequest) string {
	bill := strconv.FormatFloat(req.BillAmount, 'f', -1, 64)
	return fmt.Sprintf(suggestionPrompt, bill, req.GroupSize, req.ServiceQuality)
}

// SuggestTip makes exactly one generator call.
func (c *SuggestionClient) SuggestTip(ctx context.Context, req domain.TipRequest) domain.SuggestionOutcome {
	text, err := c.generator.GenerateContent(ctx, BuildPrompt(req), SuggestionGenerationConfig)
	if err != nil {
		slog.Warn("tip suggestion failed", "error", err)
		return domain.Failure(err.Error())
	}
	if text == "" {
		return domain.Success(EmptySuggestionText)
	}
	return domain.Success(text)
}

// SuggestTipAsync runs SuggestTip in its own goroutine. The channel receives
// exactly one outcome and is then closed.
func (c *SuggestionClient) SuggestTipAsync(ctx context.Context, req domain.TipRequest) <-chan domain.SuggestionOutcome {
	result := make(chan domain.SuggestionOutcome, 1)
	go func() {
		defer close(result)
		result <- c.SuggestTip(ctx, req)
	}()
	return result
}
