// Package coaform adapts browser form submissions into raw certificate
// values.
package coaform

import "strings"

// Source normalizes flat form posts. Defaults fill fields the form left
// blank, which lets deployments pin values like the manufacturing location.
type Source struct {
	Defaults map[string]string
}

// NewSource creates a form source with optional defaults.
func NewSource(defaults map[string]string) *Source {
	return &Source{Defaults: defaults}
}

// Values merges defaults under the submitted fields and trims everything.
// Blank submitted values fall back to the default for that key.
func (s *Source) Values(form map[string]string) map[string]string {
	size := len(form)
	if s != nil {
		size += len(s.Defaults)
	}
	values := make(map[string]string, size)

	if s != nil {
		for key, value := range s.Defaults {
			values[key] = strings.TrimSpace(value)
		}
	}
	for key, value := range form {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		values[strings.TrimSpace(key)] = value
	}
	return values
}
