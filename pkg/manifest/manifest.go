package manifest

import (
	"errors"
	"fmt"
	"regexp"
)

// The two line shapes versync recognizes. Everything else in the
// manifest passes through byte-for-byte.
var (
	versionPattern    = regexp.MustCompile(`(?m)^version = "([.a-zA-Z0-9_]*)"`)
	dependencyPattern = regexp.MustCompile(`(?m)^([a-zA-Z0-9_]*) = \{ path = "([./a-zA-Z0-9_]*)", version = "([.a-zA-Z0-9_]*)" \}`)
)

var ErrNoVersion = errors.New("no version declaration")

// Dependency is a single path-dependency line of the form
// `name = { path = "../name", version = "1.2.3" }`.
type Dependency struct {
	Name    string `toml:"name" yaml:"name"`
	Path    string `toml:"path" yaml:"path"`
	Version string `toml:"version" yaml:"version"`
}

// ExtractVersion returns the value of the first `version = "..."`
// declaration in document order. Later declarations are ignored.
func ExtractVersion(text []byte) (string, error) {
	m := versionPattern.FindSubmatch(text)
	if m == nil {
		return "", ErrNoVersion
	}
	return string(m[1]), nil
}

// Versions returns every version declaration in document order.
// ExtractVersion is Versions()[0]; the extras only matter to drift
// checks, which report them instead of guessing.
func Versions(text []byte) []string {
	matches := versionPattern.FindAllSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, string(m[1]))
	}
	return out
}

// Scan lists the path-dependency lines without modifying anything.
func Scan(text []byte) []Dependency {
	matches := dependencyPattern.FindAllSubmatch(text, -1)
	out := make([]Dependency, 0, len(matches))
	for _, m := range matches {
		out = append(out, Dependency{
			Name:    string(m[1]),
			Path:    string(m[2]),
			Version: string(m[3]),
		})
	}
	return out
}

// Rewrite sets every path-dependency line's version field to the
// manifest's declared version. It returns the rewritten buffer, the
// version that was applied, and the number of lines rewritten. Lines
// matching neither pattern are preserved exactly; zero dependency
// lines is a no-op, not an error.
func Rewrite(text []byte) ([]byte, string, int, error) {
	version, err := ExtractVersion(text)
	if err != nil {
		return nil, "", 0, err
	}

	count := 0
	out := dependencyPattern.ReplaceAllFunc(text, func(line []byte) []byte {
		m := dependencyPattern.FindSubmatch(line)
		count++
		return fmt.Appendf(nil, `%s = { path = "%s", version = "%s" }`, m[1], m[2], version)
	})

	return out, version, count, nil
}
