// Package prompt renders prompt templates with {{name}} placeholders.
package prompt

import "regexp"

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Render substitutes every {{name}} placeholder in template with
// values[name]. Unknown placeholders resolve to the empty string. Text that
// does not match the placeholder syntax is left untouched.
func Render(template string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[2 : len(m)-2]
		return values[name]
	})
}
