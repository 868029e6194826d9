package schema

import "strings"

// CanonicalName is the join key used across backends.
func CanonicalName(name string) string {
	return strings.ToLower(name)
}

// Normalize canonicalizes one backend's raw metadata.
//
// Raw rows whose names collide after lowercasing collapse into a single
// descriptor: it keeps the position of the first occurrence and the
// attributes of the last one (last-write-wins). Use Duplicates to detect
// such collisions.
func Normalize(raw []RawColumn, rule NullabilityRule) []Descriptor {
	out := make([]Descriptor, 0, len(raw))
	pos := make(map[string]int, len(raw))

	for _, rc := range raw {
		d := Descriptor{
			CanonicalName: CanonicalName(rc.Name),
			DeclaredType:  rc.DeclaredType,
			Nullable:      rule.Decode(rc.Nullable),
		}
		if i, ok := pos[d.CanonicalName]; ok {
			out[i] = d
			continue
		}
		pos[d.CanonicalName] = len(out)
		out = append(out, d)
	}
	return out
}

// Duplicates returns the canonical names that more than one raw row maps to,
// in order of first collision.
func Duplicates(raw []RawColumn) []string {
	seen := make(map[string]int, len(raw))
	var dups []string
	for _, rc := range raw {
		n := CanonicalName(rc.Name)
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}
