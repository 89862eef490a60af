package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dailypack/internal/config"
	"dailypack/internal/domain"
	"dailypack/internal/prompt"
	"dailypack/internal/repository"
	"dailypack/internal/retry"

	"go.uber.org/zap"
)

// imageExt is used for every provider-sourced asset regardless of the actual encoding
const imageExt = ".jpg"

// client holds what every variant shares: transport, retry policy, asset storage
type client struct {
	name   string
	cfg    config.ProviderConfig
	http   *http.Client
	policy retry.Policy
	assets repository.AssetRepository
	logger *zap.Logger
}

// request is one variant-built call: where to POST, with which headers and body, and how to read the answer.
// maxAttempts caps the policy for this call when set.
type request struct {
	endpoint    string
	header      http.Header
	body        any
	extractors  []Extractor
	maxAttempts int
}

func newClient(name string, cfg config.ProviderConfig, assets repository.AssetRepository, opts Options) *client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	policy := opts.Policy
	if policy.MaxAttempts == 0 {
		policy = retry.DefaultPolicy(logger)
		policy.MaxAttempts = cfg.MaxAttempts
		policy.Pacing = cfg.Pacing
	}
	if policy.Logger == nil {
		policy.Logger = logger
	}

	return &client{
		name:   name,
		cfg:    cfg,
		http:   httpClient,
		policy: policy,
		assets: assets,
		logger: logger.With(zap.String("provider", name)),
	}
}

// generate runs one request under the retry policy and stores the image on success.
// It also reports how many attempts were made. A nil ref with a nil error never happens.
func (c *client) generate(ctx context.Context, day domain.Day, word string, req request) (*domain.ImageRef, int, error) {
	var ref *domain.ImageRef
	used := 0

	policy := c.policy
	if req.maxAttempts > 0 && (policy.MaxAttempts < 1 || req.maxAttempts < policy.MaxAttempts) {
		policy.MaxAttempts = req.maxAttempts
	}

	err := policy.Do(ctx, c.name+" "+word, func(ctx context.Context, attempt int) error {
		used = attempt + 1
		raw, err := c.postJSON(ctx, req.endpoint, req.header, req.body)
		if err != nil {
			return err
		}

		payload, err := Extract(raw, req.extractors)
		if err != nil {
			return retry.Permanent(err)
		}

		data, err := c.resolve(ctx, payload)
		if err != nil {
			return err
		}

		saved, err := c.assets.SaveImage(day, word, imageExt, data)
		if err != nil {
			return retry.Permanent(err)
		}
		saved.Source = c.name + ":" + payload.Kind()

		c.logger.Info("Image saved",
			zap.String("word", word),
			zap.String("path", saved.Path),
			zap.String("source", saved.Source),
			zap.String("shape", payload.Shape),
			zap.Int("bytes", saved.Bytes),
			zap.Int("attempt", attempt+1),
		)
		ref = &saved
		return nil
	})
	if err != nil {
		return nil, used, err
	}
	return ref, used, nil
}

func (c *client) postJSON(ctx context.Context, endpoint string, header http.Header, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, retry.Permanent(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("build request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// fetch downloads a generated image URL. No provider auth is attached: result URLs are usually pre-signed.
func (c *client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("build image request: %w", err))
	}

	data, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if len(data) == 0 {
		return nil, retry.Permanent(fmt.Errorf("download image: %w", ErrEmptyResult))
	}
	return data, nil
}

func (c *client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, retry.NewHTTPStatusError(resp, raw)
	}
	return raw, nil
}

func (c *client) resolve(ctx context.Context, p Payload) ([]byte, error) {
	if p.Base64 != "" {
		data, err := decodeBase64(p.Base64)
		if err != nil {
			return nil, retry.Permanent(fmt.Errorf("decode %s: %w", p.Shape, err))
		}
		return data, nil
	}
	return c.fetch(ctx, p.URL)
}

// decodeBase64 accepts plain or data-URI base64, padded or not
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}
	return data, nil
}

func (c *client) authHeader() http.Header {
	h := http.Header{}
	if c.cfg.AuthScheme == config.AuthXAPIKey {
		h.Set("X-API-Key", c.cfg.APIKey)
	} else {
		h.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	return h
}

type inputPrompt struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	Size string `json:"size"`
	N    int    `json:"n"`
}

// inputBody is the {model, input:{prompt}, parameters:{size, n}} shape shared by Wanx and Ark
type inputBody struct {
	Model      string          `json:"model"`
	Input      inputPrompt     `json:"input"`
	Parameters imageParameters `json:"parameters"`
}

func newInputBody(cfg config.ProviderConfig, word string) inputBody {
	return inputBody{
		Model:      cfg.Model,
		Input:      inputPrompt{Prompt: prompt.Build(word)},
		Parameters: imageParameters{Size: cfg.ImageSize, N: 1},
	}
}
