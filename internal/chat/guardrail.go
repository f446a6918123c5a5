package chat

import (
	"context"
	"fmt"
	"strings"
)

// IsWeatherRelated asks the model to classify the input before any agent
// work happens. The check is a best-effort filter: the classifier is told to
// answer with one word and acceptance is a case-insensitive substring match
// on "yes". Classification turns are not stored, so a rejected input never
// advances the conversation.
func (s *Service) IsWeatherRelated(ctx context.Context, input string) (bool, error) {
	turn, err := s.llm.Respond(ctx, Request{
		Input: fmt.Sprintf(guardrailPromptFmt, input),
		Store: false,
	})
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(turn.Text), "yes"), nil
}
