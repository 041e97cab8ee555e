package breaker

import (
	"context"
	"time"

	"prd-studio-be/pkg/llm"

	"github.com/sony/gobreaker"
)

// Provider wraps any LLMProvider with a circuit breaker so a
// misbehaving upstream stops burning request budget. Auth and
// rate-limit failures are user errors and do not trip the breaker.
type Provider struct {
	inner llm.LLMProvider
	cb    *gobreaker.CircuitBreaker
}

var _ llm.LLMProvider = &Provider{}

func Wrap(inner llm.LLMProvider, name string) *Provider {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second, // half-open retry window
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			class := llm.Classify(err)
			return class == llm.ClassAuth || class == llm.ClassRateLimit
		},
	}
	return &Provider{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.inner.Chat(ctx, history, options...)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
