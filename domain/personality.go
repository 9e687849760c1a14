package domain

import "fmt"

const (
	maxDescriptionLen  = 200
	maxSystemPromptLen = 500

	defaultTemperature = 0.7
)

// Personality is a named set of tone/style parameters applied to a model
// call. Records are immutable after load and shared read-only across
// requests.
type Personality struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	SystemPrompt string             `json:"system_prompt"`
	Tone         int                `json:"tone"`
	Verbosity    int                `json:"verbosity"`
	Creativity   int                `json:"creativity"`
	Formality    int                `json:"formality"`
	IsDefault    bool               `json:"is_default"`
	ModelParams  map[string]float64 `json:"model_params"`
}

func (p Personality) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: personality id is required", ErrInvalidArgument)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: personality %q: name is required", ErrInvalidArgument, p.ID)
	}
	if len(p.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: personality %q: description exceeds %d characters", ErrInvalidArgument, p.ID, maxDescriptionLen)
	}
	if p.SystemPrompt == "" {
		return fmt.Errorf("%w: personality %q: system_prompt is required", ErrInvalidArgument, p.ID)
	}
	if len(p.SystemPrompt) > maxSystemPromptLen {
		return fmt.Errorf("%w: personality %q: system_prompt exceeds %d characters", ErrInvalidArgument, p.ID, maxSystemPromptLen)
	}
	for _, score := range []struct {
		name  string
		value int
	}{
		{"tone", p.Tone},
		{"verbosity", p.Verbosity},
		{"creativity", p.Creativity},
		{"formality", p.Formality},
	} {
		if score.value < 1 || score.value > 10 {
			return fmt.Errorf("%w: personality %q: %s must be between 1 and 10, got %d", ErrInvalidArgument, p.ID, score.name, score.value)
		}
	}
	return nil
}

// Temperature returns the generation temperature from ModelParams, falling
// back to 0.7 when the key is absent.
func (p Personality) Temperature() float64 {
	if t, ok := p.ModelParams["temperature"]; ok {
		return t
	}
	return defaultTemperature
}

// Registry is the read-only personality lookup built once at startup and
// injected wherever personalities are resolved. It is safe for concurrent
// reads and holds no mutable state.
type Registry struct {
	byID  map[string]Personality
	order []string
}

// NewRegistry validates every record and indexes them by id. Definition
// order is preserved for List.
func NewRegistry(personalities []Personality) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]Personality, len(personalities)),
		order: make([]string, 0, len(personalities)),
	}
	for _, p := range personalities {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate personality id %q", ErrInvalidArgument, p.ID)
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

func (r *Registry) Get(id string) (Personality, error) {
	p, ok := r.byID[id]
	if !ok {
		return Personality{}, fmt.Errorf("%w: personality %q", ErrNotFound, id)
	}
	return p, nil
}

// List returns all records in definition order.
func (r *Registry) List() []Personality {
	out := make([]Personality, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Default returns the first record flagged is_default, if any.
func (r *Registry) Default() (Personality, bool) {
	for _, id := range r.order {
		if p := r.byID[id]; p.IsDefault {
			return p, true
		}
	}
	return Personality{}, false
}
