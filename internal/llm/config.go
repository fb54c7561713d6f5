// Package llm wraps the Gemini API behind a small client interface used for
// skill extraction.
package llm

import "maps"

// ModelTier selects how capable (and costly) a model a call needs.
type ModelTier string

const (
	// TierLite handles tagging and short classification prompts.
	TierLite ModelTier = "lite"
	// TierStandard handles longer structured output.
	TierStandard ModelTier = "standard"
)

// Config maps tiers to Gemini model names.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini models used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// Model returns the model name for tier, falling back to the lite model.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of c with tier pointed at model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{Models: maps.Clone(c.Models), Temperature: c.Temperature}
	if next.Models == nil {
		next.Models = make(map[ModelTier]string)
	}
	next.Models[tier] = model
	return next
}
