package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"college-chat/internal/config"
	"college-chat/internal/logger"
	"college-chat/internal/metrics"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Answerer turns a prompt into a model reply. A non-nil error means there
// is no reply; callers must not treat the error text as an answer.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// AIService calls an OpenAI-compatible chat completion endpoint.
type AIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewAIService(cfg config.LLMConfig, timeout time.Duration) *AIService {
	s := &AIService{model: cfg.Model, timeout: timeout}
	if cfg.APIKey == "" {
		return s
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	client := openai.NewClient(opts...)
	s.client = &client
	return s
}

func (s *AIService) Configured() bool { return s.client != nil }

func (s *AIService) Answer(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	if s.client == nil {
		metrics.AnswerFailures.Inc()
		return "", fmt.Errorf("%w: no api key configured", ErrAnswerUnavailable)
	}

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, req)
	metrics.AnswerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnswerFailures.Inc()
		logger.Warn("answer.failed", "model", s.model, "err", err)
		return "", fmt.Errorf("%w: %v", ErrAnswerUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		metrics.AnswerFailures.Inc()
		return "", fmt.Errorf("%w: no completion received", ErrAnswerUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
