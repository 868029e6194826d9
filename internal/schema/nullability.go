package schema

import "strings"

// NullabilityRule decodes a backend's nullability token into a boolean.
// Tokens are matched after trimming and upper-casing. Tokens missing from
// the table decode to Unknown, which is false (non-nullable) unless the
// rule is built with a different fallback.
type NullabilityRule struct {
	tokens  map[string]bool
	Unknown bool
}

// NewNullabilityRule builds a rule from a token table.
func NewNullabilityRule(tokens map[string]bool) NullabilityRule {
	r := NullabilityRule{tokens: make(map[string]bool, len(tokens))}
	for k, v := range tokens {
		r.tokens[normalizeToken(k)] = v
	}
	return r
}

// RuleFromTokens builds a rule from explicit nullable and non-nullable token lists.
func RuleFromTokens(nullable, notNullable []string, unknown bool) NullabilityRule {
	m := make(map[string]bool, len(nullable)+len(notNullable))
	for _, t := range notNullable {
		m[t] = false
	}
	for _, t := range nullable {
		m[t] = true
	}
	r := NewNullabilityRule(m)
	r.Unknown = unknown
	return r
}

// WithUnknown returns a copy of r whose unrecognized tokens decode to v.
func (r NullabilityRule) WithUnknown(v bool) NullabilityRule {
	r.Unknown = v
	return r
}

// Decode maps a raw token to a boolean.
func (r NullabilityRule) Decode(token string) bool {
	if v, ok := r.tokens[normalizeToken(token)]; ok {
		return v
	}
	return r.Unknown
}

// Recognizes reports whether the token is present in the rule's table.
func (r NullabilityRule) Recognizes(token string) bool {
	_, ok := r.tokens[normalizeToken(token)]
	return ok
}

func normalizeToken(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// YesNoRule decodes INFORMATION_SCHEMA style "YES"/"NO".
func YesNoRule() NullabilityRule {
	return NewNullabilityRule(map[string]bool{"YES": true, "NO": false})
}

// YNRule decodes single letter "Y"/"N" as reported by Oracle and Snowflake.
func YNRule() NullabilityRule {
	return NewNullabilityRule(map[string]bool{"Y": true, "N": false})
}
