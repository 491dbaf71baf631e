package relay

import (
	"sort"
	"strings"
)

// RenderTemplate substitutes {{key}} tokens in the template with the
// corresponding submitted values in a single pass, so tokens inside values are
// never expanded. Tokens with no matching key are left as-is.
func RenderTemplate(tmpl string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", fields[key])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
