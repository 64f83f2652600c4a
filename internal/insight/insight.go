package insight

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal chat-completion surface the advisor needs, so any
// OpenAI-compatible backend or a test fake can stand in.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ErrEmptyCompletion indicates the model returned no usable note.
var ErrEmptyCompletion = errors.New("empty completion")

// Input is the already-computed analysis the advisor elaborates on. The
// advisor never sees raw export content, only the aggregated values.
type Input struct {
	Level      string
	Percent    int
	Categories map[string]int
	TopLabels  []string
}

// Advisor asks a chat model for a short, personalized privacy note to
// accompany the fixed tier guidance. It is strictly additive: callers
// treat any error as "no note".
type Advisor struct {
	Client Client
	Model  string
}

// New builds an advisor against an OpenAI-compatible endpoint. It returns
// nil when no model is configured, which disables the feature.
func New(baseURL, model, apiKey string) *Advisor {
	if strings.TrimSpace(model) == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Advisor{Client: openai.NewClientWithConfig(cfg), Model: model}
}

const systemPrompt = "You are a privacy coach. Given a summary of a user's " +
	"logged online activity, write one short paragraph (at most three " +
	"sentences) of practical, non-alarmist advice. Do not repeat the raw " +
	"numbers back; do not use markdown."

// Note requests the privacy note. The note is plain text with surrounding
// whitespace trimmed.
func (a *Advisor) Note(ctx context.Context, in Input) (string, error) {
	if a == nil || a.Client == nil || strings.TrimSpace(a.Model) == "" {
		return "", errors.New("advisor not configured")
	}

	req := openai.ChatCompletionRequest{
		Model: a.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(in)},
		},
		Temperature: 0.2,
		N:           1,
	}
	resp, err := a.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("privacy note call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	note := strings.TrimSpace(resp.Choices[0].Message.Content)
	if note == "" {
		return "", ErrEmptyCompletion
	}
	return note, nil
}

func buildUserMessage(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk tier: %s (%d%% meter).\n", in.Level, in.Percent)

	cats := make([]string, 0, len(in.Categories))
	for cat, n := range in.Categories {
		if n > 0 {
			cats = append(cats, fmt.Sprintf("%s=%d", cat, n))
		}
	}
	sort.Strings(cats)
	if len(cats) > 0 {
		fmt.Fprintf(&b, "Activity counts: %s.\n", strings.Join(cats, ", "))
	}
	if len(in.TopLabels) > 0 {
		fmt.Fprintf(&b, "Most frequent interests: %s.\n", strings.Join(in.TopLabels, "; "))
	}
	return b.String()
}
