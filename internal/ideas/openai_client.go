package ideas

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIClient struct {
	client openai.Client
	model  string
	batch  int
}

func newOpenAIClient(apiKey, baseURL, model string, batch int, httpClient *http.Client) (*openAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; set BRAINSTORM_API_KEY or OPENAI_API_KEY")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(1),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		batch:  batch,
	}, nil
}

func (c *openAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

// FetchIdeas asks for c.batch completions of a single-idea prompt. Each
// choice usually carries one idea, but list-shaped replies are split too.
func (c *openAIClient) FetchIdeas(ctx context.Context, topic string) ([]string, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildSingleIdeaPrompt(topic)),
		},
		N:           openai.Int(int64(c.batch)),
		Temperature: openai.Float(0.9),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai API returned no choices")
	}
	var out []string
	for _, choice := range resp.Choices {
		out = append(out, parseIdeas(choice.Message.Content)...)
	}
	return out, nil
}
