package llm

import "strings"

// Models is the allowlist of provider models callers may request.
type Models struct {
	Default string
	Allowed []string
}

// Resolve returns model when it is allowed, otherwise the default.
func (m Models) Resolve(model string) string {
	model = strings.TrimSpace(model)
	for _, allowed := range m.Allowed {
		if model != "" && strings.EqualFold(model, allowed) {
			return allowed
		}
	}
	return m.Default
}

// List returns the allowed models with the default first.
func (m Models) List() []string {
	out := []string{m.Default}
	for _, allowed := range m.Allowed {
		if !strings.EqualFold(allowed, m.Default) {
			out = append(out, allowed)
		}
	}
	return out
}
