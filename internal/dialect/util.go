package dialect

import (
	"strings"
)

// quoteWith wraps name in the given delimiters, doubling any closing delimiter inside it.
func quoteWith(name, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

// qualify joins already quoted parts with dots, skipping empty ones.
func qualify(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// quoteAll quotes every non-empty part with d.
func quoteAll(d Dialect, parts ...string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		if p != "" {
			out[i] = d.QuoteIdent(p)
		}
	}
	return out
}
