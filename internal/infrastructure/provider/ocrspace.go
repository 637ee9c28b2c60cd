package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vinolens/backend/internal/domain"
	"golang.org/x/time/rate"
)

const defaultOCRSpaceURL = "https://api.ocr.space/parse/image"

// OCRSpaceProvider is the generic OCR fallback backend. It returns raw label
// text only; structure comes from the parser's heuristic line extraction.
type OCRSpaceProvider struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewOCRSpaceProvider creates an OCR.space API client. baseURL may be empty
// to use the public endpoint.
func NewOCRSpaceProvider(apiKey, baseURL string) *OCRSpaceProvider {
	if baseURL == "" {
		baseURL = defaultOCRSpaceURL
	}

	// The free OCR.space tier allows 500 requests/day; ~10 req/min with a
	// small burst keeps us comfortably under it.
	limiter := rate.NewLimiter(rate.Limit(0.167), 5)

	return &OCRSpaceProvider{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request logging.
func (p *OCRSpaceProvider) SetDebug(debug bool) {
	p.debug = debug
}

// Name implements domain.LabelProvider.
func (p *OCRSpaceProvider) Name() string {
	return "ocrspace"
}

// ocrSpaceResponse mirrors the subset of the OCR.space reply we consume.
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"` // string or []string
}

// AnalyzeImage implements domain.LabelProvider. Exactly one POST per call;
// no retry loop (failure policy belongs to the analysis service).
func (p *OCRSpaceProvider) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*domain.WineLabelAnalysis, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: ocrspace api key not set", domain.ErrProviderConfigInvalid)
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("apikey", p.apiKey)
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image)))
	form.Set("OCREngine", "2")
	form.Set("scale", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "VinoLens/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if p.debug {
			log.Printf("[OCR] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var ocrResp ocrSpaceResponse
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponseInvalid, err)
	}
	if ocrResp.IsErroredOnProcessing || len(ocrResp.ParsedResults) == 0 {
		return nil, fmt.Errorf("%w: ocr processing failed: %s", domain.ErrProviderResponseInvalid, string(ocrResp.ErrorMessage))
	}

	text := strings.TrimSpace(ocrResp.ParsedResults[0].ParsedText)
	if p.debug {
		log.Printf("[OCR] extracted %d bytes of label text", len(text))
	}

	// OCR gives us text, not structure; the heuristic strategy of the
	// parser pulls vintage/region/grapes out of the raw lines.
	analysis, err := ParseAnalysis(text)
	if err != nil {
		if errors.Is(err, domain.ErrNoStructuredPayload) {
			return &domain.WineLabelAnalysis{ExtractedText: text}, nil
		}
		return nil, err
	}
	return analysis, nil
}
