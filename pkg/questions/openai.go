package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is used when OPENAI_MODEL is not configured.
	DefaultModel = openai.GPT3Dot5Turbo

	// DefaultTimeout bounds the single remote call made per assessment turn.
	DefaultTimeout = 30 * time.Second

	systemPrompt = "You are a technical hiring expert. Generate relevant technical interview questions."

	// maxQuestions caps how many questions one reply may contribute.
	maxQuestions = 5
)

const promptTemplate = `Generate 3-5 technical interview questions for %s suitable for a candidate
with approximately %d years of experience.

The questions should:
1. Assess practical knowledge and problem-solving skills
2. Be appropriate for the experience level
3. Cover different aspects of the technology (fundamentals, advanced concepts, best practices)
4. Be clear and concise

Return only the questions as a JSON array of strings.`

// OpenAIGenerator implements Generator using OpenAI chat completions.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator constructs a generator with a bounded request timeout.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration) *OpenAIGenerator {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Questions issues a single chat-completion request and parses the reply.
// It succeeds even when the structured-format request was not honored
// exactly; the caller handles any error by switching to the fallback table.
func (g *OpenAIGenerator) Questions(ctx context.Context, technology string, yearsExperience int) ([]string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, technology, yearsExperience)},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.New("openai response empty content")
	}

	questions := parseReply(content)
	if len(questions) == 0 {
		return nil, errors.New("openai reply contained no questions")
	}
	return questions, nil
}

// parseReply attempts strict JSON-array parsing first, then falls back to
// splitting on newlines, and truncates to maxQuestions either way.
func parseReply(content string) []string {
	var questions []string
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		questions = questions[:0]
		for _, line := range strings.Split(content, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				questions = append(questions, line)
			}
		}
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}

var _ Generator = (*OpenAIGenerator)(nil)
