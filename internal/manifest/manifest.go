// Package manifest reads and rewrites the two package.json fields snaprel
// owns: version and gitHead. Writes are surgical: key order, indentation,
// unknown fields, and the trailing newline of the document survive. A write
// is skipped when nothing would change, so an untouched manifest keeps its
// modification time.
package manifest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Fields holds the manifest fields the release flow mutates and restores.
// An empty GitHead means the gitHead key is absent from the document.
type Fields struct {
	Version string
	GitHead string
}

// Read returns the current owned fields of the manifest at path.
func Read(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("reading manifest: %w", err)
	}
	return parse(path, data)
}

// Apply writes next into the manifest at path and returns the previous
// values so the caller can restore them later. When both fields already
// match, the file is not opened for writing and changed is false.
func Apply(path string, next Fields) (prev Fields, changed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, false, fmt.Errorf("reading manifest: %w", err)
	}
	prev, err = parse(path, data)
	if err != nil {
		return Fields{}, false, err
	}
	if prev == next {
		return prev, false, nil
	}

	out, err := rewrite(data, next)
	if err != nil {
		return Fields{}, false, fmt.Errorf("updating manifest %s: %w", path, err)
	}

	mode := fs.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return Fields{}, false, fmt.Errorf("writing manifest: %w", err)
	}
	return prev, true, nil
}

func parse(path string, data []byte) (Fields, error) {
	if !gjson.ValidBytes(data) {
		return Fields{}, fmt.Errorf("manifest %s: invalid JSON", path)
	}
	version := gjson.GetBytes(data, "version")
	if !version.Exists() {
		return Fields{}, fmt.Errorf("manifest %s: missing version field", path)
	}
	return Fields{
		Version: version.String(),
		GitHead: gjson.GetBytes(data, "gitHead").String(),
	}, nil
}

func rewrite(data []byte, next Fields) ([]byte, error) {
	hadNewline := bytes.HasSuffix(data, []byte("\n"))

	out, err := sjson.SetBytes(data, "version", next.Version)
	if err != nil {
		return nil, err
	}
	if next.GitHead == "" {
		out, err = sjson.DeleteBytes(out, "gitHead")
	} else {
		out, err = sjson.SetBytes(out, "gitHead", next.GitHead)
	}
	if err != nil {
		return nil, err
	}

	if hadNewline && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}
