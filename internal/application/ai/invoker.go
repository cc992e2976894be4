package ai

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bryanwahyu/contract-sentinel/internal/domain/ai"
)

const (
	// maxAttemptsPerModel bounds retries for one candidate before the
	// chain advances. Kept small since the chain has multiple models.
	maxAttemptsPerModel = 2

	// baseRetryDelay is the first backoff interval; it doubles per retry.
	baseRetryDelay = 3 * time.Second
)

// fallbackModels are the fixed secondary candidates, in priority order.
var fallbackModels = [2]string{"gpt-4o-mini", "gpt-3.5-turbo"}

// BuildChain returns the candidate models for one invocation: the
// requested model first, then the fixed fallbacks, duplicates removed
// preserving first occurrence.
func BuildChain(requested string) []string {
	chain := make([]string, 0, len(fallbackModels)+1)
	seen := make(map[string]bool, len(fallbackModels)+1)
	for _, m := range append([]string{requested}, fallbackModels[:]...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		chain = append(chain, m)
	}
	return chain
}

// Invoker drives the external LLM call with per-model bounded retries and
// model fallback. The provider credential is process-wide, so the whole
// configure-and-generate sequence runs under one exclusive lock: at most
// one request talks to the provider at a time. Correctness over throughput.
type Invoker struct {
	mu     sync.Mutex
	client ai.Client
	log    *slog.Logger

	// sleep is swapped out in tests to make the backoff schedule observable.
	sleep func(time.Duration)
}

func NewInvoker(client ai.Client, log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.Default()
	}
	return &Invoker{client: client, log: log, sleep: time.Sleep}
}

// Result of a successful invocation.
type Result struct {
	Text  string
	Model string
}

// Invoke configures the client with apiKey and walks the fallback chain.
//
// Transition table per candidate model:
//   - success                          -> terminal success
//   - retryable, attempts remaining    -> retry same model after backoff
//   - retryable, attempts exhausted    -> next model
//   - non-retryable                    -> next model immediately
//   - no more models                   -> *ai.ExhaustedError with last error
func (inv *Invoker) Invoke(ctx context.Context, apiKey string, prompt string, image []byte, requestedModel string) (Result, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.client.Configure(apiKey)

	chain := BuildChain(requestedModel)

	var lastErr error
	var lastModel string

	for _, model := range chain {
		inv.log.Info("ai.invoke.model", "model", model)
		delay := baseRetryDelay

		for attempt := 1; attempt <= maxAttemptsPerModel; attempt++ {
			text, err := inv.client.Generate(ctx, ai.Request{
				Model:  model,
				Prompt: prompt,
				Image:  image,
			})
			if err == nil {
				inv.log.Info("ai.invoke.success", "model", model, "attempt", attempt)
				return Result{Text: text, Model: model}, nil
			}

			lastErr = err
			lastModel = model
			class := ai.Classify(err)

			if !class.Retryable() {
				inv.log.Warn("ai.invoke.fatal_for_model", "model", model, "error", err)
				break
			}
			if attempt < maxAttemptsPerModel {
				inv.log.Warn("ai.invoke.retry",
					"model", model, "attempt", attempt, "class", string(class), "delay", delay)
				inv.sleep(delay)
				delay *= 2
				continue
			}
			inv.log.Warn("ai.invoke.attempts_exhausted", "model", model, "class", string(class))
		}
	}

	exhausted := &ai.ExhaustedError{Model: lastModel, Class: ai.Classify(lastErr), Err: lastErr}
	inv.log.Error("ai.invoke.exhausted", "model", lastModel, "class", string(exhausted.Class), "error", lastErr)
	return Result{}, exhausted
}
