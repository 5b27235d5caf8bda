package llm

//go:generate go run go.uber.org/mock/mockgen -source=./llm.go -destination=./mocks/llm_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutrisur/config"
	"nutrisur/infras/otel"
	"nutrisur/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"

	otelAttrProvider = "llm.provider"
)

var ErrDisabled = errors.New("llm provider is not configured")

// Generator sends one system instruction plus one user prompt and returns the raw text reply.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type provider interface {
	generate(ctx context.Context, system, prompt string) (string, error)
}

type generatorImpl struct {
	name     string
	provider provider
	timeout  time.Duration
	otel     otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Generator {
	ctx := context.Background()
	llmConfig := cfg.External.LLM

	var (
		prov provider
		err  error
	)

	switch llmConfig.Provider {
	case ProviderArk:
		prov, err = newArk(ctx, cfg)
	default:
		prov, err = newGemini(ctx, cfg)
	}

	if err != nil {
		log.Warn().Err(err).Str("provider", llmConfig.Provider).Msg("LLM provider unavailable, assistant replies will fall back")

		prov = disabled{}
	}

	return &generatorImpl{
		name:     llmConfig.Provider,
		provider: prov,
		timeout:  time.Duration(llmConfig.TimeoutSeconds) * time.Second,
		otel:     ot,
	}
}

func (g *generatorImpl) Generate(ctx context.Context, system, prompt string) (res string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".llm.Generate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelAttrProvider, g.name)

	if g.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err = g.provider.generate(ctx, system, prompt)
	if err != nil {
		log.Error().Err(err).Str("provider", g.name).Msg("failed to generate llm reply")

		return constant.Empty, fmt.Errorf("failed to generate llm reply: %w", err)
	}

	return res, nil
}

type disabled struct{}

func (disabled) generate(context.Context, string, string) (string, error) {
	return constant.Empty, ErrDisabled
}
