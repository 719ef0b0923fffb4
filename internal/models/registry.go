// Package models filters the OpenRouter catalog down to free models and
// assigns them to debate roles when the caller does not pick models
// explicitly.
package models

import (
	"debatearena/internal/openrouter"
)

// Registry holds a filtered list of free models.
type Registry struct {
	free []openrouter.Model
}

// NewRegistry creates a registry, keeping only free models (Prompt == "0"
// and Completion == "0"). Models with nil Pricing are excluded.
func NewRegistry(models []openrouter.Model) *Registry {
	var free []openrouter.Model
	for _, m := range models {
		if m.Pricing == nil {
			continue
		}
		if m.Pricing.Prompt == "0" && m.Pricing.Completion == "0" {
			free = append(free, m)
		}
	}
	return &Registry{free: free}
}

// FreeModels returns all free models in the registry.
func (r *Registry) FreeModels() []openrouter.Model {
	return r.free
}

// Lineup is the model assignment for one debate.
type Lineup struct {
	Pro   string
	Con   string
	Judge string
}

// Complete reports whether every role has a model.
func (l Lineup) Complete() bool {
	return l.Pro != "" && l.Con != "" && l.Judge != ""
}

// FillLineup fills the empty roles of l from the free list, preferring
// distinct models per role and cycling when fewer than three are available.
// The caller's explicit choices are never overridden.
func (r *Registry) FillLineup(l Lineup) Lineup {
	if len(r.free) == 0 {
		return l
	}
	next := 0
	pick := func() string {
		id := r.free[next%len(r.free)].ID
		next++
		return id
	}
	if l.Pro == "" {
		l.Pro = pick()
	}
	if l.Con == "" {
		l.Con = pick()
	}
	if l.Judge == "" {
		l.Judge = pick()
	}
	return l
}

// DefaultFreeModels returns a hardcoded fallback list of known free models,
// used when the live catalog cannot be fetched.
func DefaultFreeModels() []openrouter.Model {
	return []openrouter.Model{
		{ID: "qwen/qwen3-235b-a22b:free", Name: "Qwen3 235B A22B", Pricing: &openrouter.Pricing{Prompt: "0", Completion: "0"}},
		{ID: "google/gemma-3n-e2b-it:free", Name: "Gemma 3n 2B", Pricing: &openrouter.Pricing{Prompt: "0", Completion: "0"}},
		{ID: "nvidia/nemotron-nano-9b-v2:free", Name: "Nemotron Nano 9B V2", Pricing: &openrouter.Pricing{Prompt: "0", Completion: "0"}},
		{ID: "qwen/qwen3-coder:free", Name: "Qwen3 Coder 480B A35B", Pricing: &openrouter.Pricing{Prompt: "0", Completion: "0"}},
		{ID: "openai/gpt-oss-120b:free", Name: "GPT OSS 120B", Pricing: &openrouter.Pricing{Prompt: "0", Completion: "0"}},
	}
}
