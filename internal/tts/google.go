package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdfget/pdf-audiobook/internal/logging"
)

// Google Translate TTS endpoint constants
const (
	DefaultGoogleEndpoint = "https://translate.google.com/translate_tts"

	// GoogleMaxChunkChars is the per-request text limit of the endpoint.
	GoogleMaxChunkChars = 200

	// GoogleClientParam identifies the caller the same way the web widget does.
	GoogleClientParam = "tw-ob"

	requestTimeout    = 30 * time.Second
	requestsPerSecond = 2
	requestBurst      = 1
)

// GoogleSynthesizer implements Synthesizer against the unauthenticated Google
// Translate TTS endpoint.
type GoogleSynthesizer struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewGoogleSynthesizer creates a synthesizer for the public endpoint
func NewGoogleSynthesizer() *GoogleSynthesizer {
	return NewGoogleSynthesizerURL(DefaultGoogleEndpoint)
}

// NewGoogleSynthesizerURL creates a synthesizer for a custom endpoint URL.
// Used by tests and self-hosted proxies.
func NewGoogleSynthesizerURL(endpoint string) *GoogleSynthesizer {
	return &GoogleSynthesizer{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// MaxTextLength returns the per-request character limit
func (s *GoogleSynthesizer) MaxTextLength() int {
	return GoogleMaxChunkChars
}

// Synthesize converts a single text chunk to MP3 bytes. The language is
// validated before any network call so an unsupported code fails fast with
// UnsupportedLanguageError instead of producing a wrong-voice artifact.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if length := len([]rune(text)); length > GoogleMaxChunkChars {
		return nil, fmt.Errorf("chunk too long: %d chars, limit %d", length, GoogleMaxChunkChars)
	}

	lang, ok := NormalizeLanguage(language)
	if !ok {
		return nil, &UnsupportedLanguageError{Code: language}
	}

	// Pace requests so long documents do not hammer the endpoint
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", GoogleClientParam)
	query.Set("tl", lang)
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &NetworkError{Err: fmt.Errorf("unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if len(audio) == 0 {
		return nil, &NetworkError{Err: fmt.Errorf("empty audio response")}
	}

	logging.LogTTSRequest(lang, len([]rune(text)), len(audio), time.Since(start))

	return audio, nil
}
