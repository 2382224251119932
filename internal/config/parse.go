package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Path returns the location of snaprel.yaml under root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Exists reports whether root has a snaprel.yaml.
func Exists(root string) bool {
	_, err := os.Stat(Path(root))
	return err == nil
}

// Load reads snaprel.yaml from root. A missing file is not an error:
// the defaults apply.
func Load(root string) (*File, error) {
	data, err := os.ReadFile(Path(root))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates snaprel.yaml content. Omitted fields are
// filled in from the defaults before validation.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	applyDefaults(&f)
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save validates and writes a configuration file under root.
func Save(root string, f *File) error {
	applyDefaults(f)
	if err := validate(f); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func applyDefaults(f *File) {
	d := Default()
	if f.PublishTag == "" {
		f.PublishTag = d.PublishTag
	}
	if f.PromoteTag == "" {
		f.PromoteTag = d.PromoteTag
	}
	if f.Hooks.Prepublish == "" {
		f.Hooks.Prepublish = d.Hooks.Prepublish
	}
	if f.Hooks.Postpublish == "" {
		f.Hooks.Postpublish = d.Hooks.Postpublish
	}
}

func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}
	if err := ValidateScope(f.Scope); err != nil {
		return fmt.Errorf("config: scope: %w", err)
	}
	if err := ValidateTag(f.PublishTag); err != nil {
		return fmt.Errorf("config: publish_tag: %w", err)
	}
	if err := ValidateTag(f.PromoteTag); err != nil {
		return fmt.Errorf("config: promote_tag: %w", err)
	}
	if f.PublishTag == f.PromoteTag {
		return fmt.Errorf("config: publish_tag and promote_tag must differ: %s", f.PublishTag)
	}
	return nil
}

// ValidateScope checks an npm scope prefix such as "@acme". Empty means
// no scope filter.
func ValidateScope(scope string) error {
	if scope == "" {
		return nil
	}
	if !strings.HasPrefix(scope, "@") {
		return fmt.Errorf("scope must start with @: %s", scope)
	}
	if len(scope) == 1 || strings.ContainsAny(scope, " \t/") {
		return fmt.Errorf("invalid scope %q", scope)
	}
	return nil
}

// ValidateTag rejects dist-tags the npm registry would refuse or could
// mistake for a version.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("dist-tag must not be empty")
	}
	if strings.ContainsAny(tag, " \t/") {
		return fmt.Errorf("invalid dist-tag %q", tag)
	}
	if tag[0] >= '0' && tag[0] <= '9' {
		return fmt.Errorf("dist-tag must not start with a digit: %s", tag)
	}
	if strings.HasPrefix(tag, "v") && len(tag) > 1 && tag[1] >= '0' && tag[1] <= '9' {
		return fmt.Errorf("dist-tag looks like a version: %s", tag)
	}
	return nil
}
