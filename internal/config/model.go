package config

// FileName is the per-workspace configuration file read by snaprel.
const FileName = "snaprel.yaml"

// File represents the snaprel.yaml configuration.
type File struct {
	Version    int    `yaml:"version"`
	Scope      string `yaml:"scope,omitempty"`
	PublishTag string `yaml:"publish_tag,omitempty"`
	PromoteTag string `yaml:"promote_tag,omitempty"`
	Hooks      Hooks  `yaml:"hooks,omitempty"`
}

// Hooks names the package.json scripts run around publishing. Empty
// fields fall back to the defaults.
type Hooks struct {
	Prepublish  string `yaml:"prepublish,omitempty"`
	Postpublish string `yaml:"postpublish,omitempty"`
}

// Default returns the configuration used when no snaprel.yaml exists.
func Default() *File {
	return &File{
		Version:    1,
		PublishTag: "ci",
		PromoteTag: "edge",
		Hooks: Hooks{
			Prepublish:  "prepublish",
			Postpublish: "postpublish",
		},
	}
}
