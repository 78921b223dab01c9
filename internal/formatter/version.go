package formatter

import (
	"regexp"
	"strings"
)

// VersionSpec is a version template over ${raw}, ${major}, ${minor} and ${patch}.
// The number of components it shows is the highest component it references.
type VersionSpec string

// DefaultVersionSpec shows the full version with a "v" prefix.
const DefaultVersionSpec VersionSpec = "v${raw}"

var versionPrefix = regexp.MustCompile(`^v?(\d+(?:[.-]\d+)*)`)

var componentIndex = map[string]int{
	"major": 0,
	"minor": 1,
	"patch": 2,
}

// FormatVersion normalizes raw according to spec.
//
// raw must start with a dot or dash separated numeric sequence, optionally
// prefixed with "v"; anything after it is ignored except by ${raw}. When spec
// asks for more components than raw has, the output stops before the first
// missing component and trailing separators are dropped. An empty spec means
// DefaultVersionSpec.
func FormatVersion(raw string, spec VersionSpec) (string, error) {
	if spec == "" {
		spec = DefaultVersionSpec
	}
	raw = strings.TrimSpace(raw)
	match := versionPrefix.FindStringSubmatch(raw)
	if match == nil {
		return "", versionError(raw, "not a numeric version")
	}
	components := strings.FieldsFunc(match[1], func(r rune) bool {
		return r == '.' || r == '-'
	})

	var out strings.Builder
	rest := string(spec)
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return "", versionError(raw, "unterminated placeholder in %q", spec)
		}
		out.WriteString(rest[:start])
		name := rest[start+2 : start+end]
		rest = rest[start+end+1:]

		if name == "raw" {
			out.WriteString(raw)
			continue
		}
		idx, ok := componentIndex[name]
		if !ok {
			return "", versionError(raw, "unknown placeholder ${%s} in %q", name, spec)
		}
		if idx >= len(components) {
			return strings.TrimRight(out.String(), ".-_ "), nil
		}
		out.WriteString(components[idx])
	}
}
