// Package provider contains the label analysis backend adapters and the
// shared response parser. Every adapter normalizes its backend's reply into
// a domain.WineLabelAnalysis; none of them retries on failure.
package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/vinolens/backend/internal/domain"
)

// labelPrompt asks the model for exactly the structured reply the parser
// expects. The parser still tolerates prose or markdown around the object.
const labelPrompt = `You are a sommelier's assistant. Analyze this wine label image and reply with a JSON object containing:
"wineName", "producer", "vintage", "region", "grapeVarieties" (array of strings), "alcoholContent", "extractedText" (all text visible on the label), and optionally "additionalInfo" with "wineType", "appellation", and "classification".
Use empty strings for anything you cannot read. Reply with the JSON object only.`

// OpenAIProvider analyzes label images through an OpenAI-compatible vision
// chat completion API.
type OpenAIProvider struct {
	client oai.Client
	model  string
	apiKey string
	debug  bool
}

// OpenAIOption is a functional option for OpenAIProvider.
type OpenAIOption func(*openaiConfig)

type openaiConfig struct {
	baseURL string
	timeout time.Duration
	debug   bool
}

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openaiConfig) {
		c.timeout = d
	}
}

// WithDebug enables request logging.
func WithDebug(debug bool) OpenAIOption {
	return func(c *openaiConfig) {
		c.debug = debug
	}
}

// NewOpenAIProvider constructs the vision-LLM adapter. A missing API key is
// not rejected here; AnalyzeImage reports ErrProviderConfigInvalid so the
// fallback controller can decide what to do with it.
func NewOpenAIProvider(apiKey, model string, opts ...OpenAIOption) *OpenAIProvider {
	cfg := &openaiConfig{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One request per call; failure policy is the analysis service's job.
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}

	return &OpenAIProvider{
		client: oai.NewClient(reqOpts...),
		model:  model,
		apiKey: apiKey,
		debug:  cfg.debug,
	}
}

// Name implements domain.LabelProvider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// AnalyzeImage implements domain.LabelProvider. Exactly one chat completion
// request per call.
func (p *OpenAIProvider) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*domain.WineLabelAnalysis, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key not set", domain.ErrProviderConfigInvalid)
	}
	if p.model == "" {
		return nil, fmt.Errorf("%w: openai model not set", domain.ErrProviderConfigInvalid)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage([]oai.ChatCompletionContentPartUnionParam{
				oai.TextContentPart(labelPrompt),
				oai.ImageContentPart(oai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices in response", domain.ErrProviderResponseInvalid)
	}

	content := resp.Choices[0].Message.Content
	if p.debug {
		log.Printf("[PROVIDER] openai reply (%d bytes): %.200s", len(content), content)
	}

	analysis, err := ParseAnalysis(content)
	if err != nil {
		// A reply arrived but held no structured payload. Keep the raw text
		// so catalog matching downstream still has something to chew on.
		if errors.Is(err, domain.ErrNoStructuredPayload) {
			return &domain.WineLabelAnalysis{ExtractedText: content}, nil
		}
		return nil, err
	}
	return analysis, nil
}
