package provider

import (
	"context"
	"strings"

	"dailypack/internal/config"
	"dailypack/internal/domain"
	"dailypack/internal/prompt"
	"dailypack/internal/repository"

	"go.uber.org/zap"
)

// openAIBody is the OpenAI-compatible images/generations shape
type openAIBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

// Doubao calls a Seedream text-to-image endpoint in either the Ark or the OpenAI-compatible flavor
type Doubao struct {
	*client
	buildBody func(cfg config.ProviderConfig, word string) any
}

// NewDoubaoArk creates a Doubao provider sending {model, input:{prompt}, parameters:{size, n}}
func NewDoubaoArk(cfg config.ProviderConfig, assets repository.AssetRepository, opts Options) *Doubao {
	return &Doubao{
		client: newClient(string(domain.ProviderDoubaoArk), cfg, assets, opts),
		buildBody: func(cfg config.ProviderConfig, word string) any {
			return newInputBody(cfg, word)
		},
	}
}

// NewDoubaoOpenAI creates a Doubao provider sending {model, prompt, size, n}
func NewDoubaoOpenAI(cfg config.ProviderConfig, assets repository.AssetRepository, opts Options) *Doubao {
	return &Doubao{
		client: newClient(string(domain.ProviderDoubaoOpenAI), cfg, assets, opts),
		buildBody: func(cfg config.ProviderConfig, word string) any {
			return openAIBody{Model: cfg.Model, Prompt: prompt.Build(word), Size: cfg.ImageSize, N: 1}
		},
	}
}

// Name returns the flavor-qualified provider name
func (d *Doubao) Name() string {
	return d.name
}

// Endpoints returns the candidate URLs in the order they are tried
func (d *Doubao) Endpoints() []string {
	return candidateEndpoints(d.cfg.Endpoint, d.cfg.EndpointSuffixes)
}

// GenerateImage walks the candidate endpoints and stops at the first stored image.
// All candidates draw from one attempt budget; a candidate is abandoned early only on a non-retryable failure.
func (d *Doubao) GenerateImage(ctx context.Context, day domain.Day, word string) *domain.ImageRef {
	body := d.buildBody(d.cfg, word)
	budget := d.policy.MaxAttempts
	if budget < 1 {
		budget = 1
	}

	for _, endpoint := range d.Endpoints() {
		if budget <= 0 {
			break
		}

		ref, used, err := d.generate(ctx, day, word, request{
			endpoint:    endpoint,
			header:      d.authHeader(),
			body:        body,
			extractors:  DoubaoExtractors,
			maxAttempts: budget,
		})
		if err == nil {
			return ref
		}
		budget -= used

		d.logger.Warn("Image generation failed",
			zap.String("word", word),
			zap.String("endpoint", endpoint),
			zap.Int("attempts_left", budget),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

func candidateEndpoints(base string, suffixes []string) []string {
	base = strings.TrimSpace(base)
	if len(suffixes) == 0 {
		return []string{base}
	}

	trimmed := strings.TrimRight(base, "/")
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, trimmed+"/"+strings.TrimLeft(s, "/"))
	}
	return out
}
