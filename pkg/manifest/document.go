package manifest

import (
	"github.com/BurntSushi/toml"
)

// Document is the read-only semantic view of a manifest, used by
// inspection commands. The rewrite path never goes through it: only
// the regex transform preserves untouched lines byte-for-byte.
type Document struct {
	Version      string       `toml:"version" yaml:"version"`
	Dependencies []Dependency `toml:"dependencies" yaml:"dependencies"`
}

// Parse decodes the manifest as TOML, keeping dependencies in
// document order. The line patterns are the contract the rewrite
// honors, so whenever the TOML view sees less than they do — the file
// is not valid TOML, or the declarations sit under table headings
// like [package] and [dependencies] where they leave the top-level
// namespace but still match at line start — Parse defers to the
// pattern scan. Parse fails only when the rewrite would fail too.
func Parse(text []byte) (*Document, error) {
	var raw map[string]toml.Primitive
	md, err := toml.Decode(string(text), &raw)
	if err != nil {
		return parseScan(text)
	}

	doc := new(Document)
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		prim, ok := raw[name]
		if !ok {
			continue
		}

		if name == "version" {
			if err := md.PrimitiveDecode(prim, &doc.Version); err != nil {
				return parseScan(text)
			}
			continue
		}

		var dep struct {
			Path    string `toml:"path"`
			Version string `toml:"version"`
		}
		if err := md.PrimitiveDecode(prim, &dep); err != nil || dep.Path == "" {
			continue
		}
		doc.Dependencies = append(doc.Dependencies, Dependency{
			Name:    name,
			Path:    dep.Path,
			Version: dep.Version,
		})
	}

	if doc.Version == "" || len(doc.Dependencies) < len(Scan(text)) {
		return parseScan(text)
	}
	return doc, nil
}

func parseScan(text []byte) (*Document, error) {
	version, err := ExtractVersion(text)
	if err != nil {
		return nil, err
	}
	return &Document{
		Version:      version,
		Dependencies: Scan(text),
	}, nil
}
