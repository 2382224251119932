package release

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report records what a release run produced, for CI artifacts and
// later inspection.
type Report struct {
	GeneratedAt string   `json:"generated_at"`
	ToolVersion string   `json:"tool_version"`
	Describe    string   `json:"describe"`
	Head        string   `json:"head"`
	PublishTag  string   `json:"publish_tag"`
	PromoteTag  string   `json:"promote_tag"`
	Duration    string   `json:"duration"`
	Candidates  []string `json:"candidates"`
}

// ReadReport reads a run report file.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-chosen report path
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return ParseReport(data)
}

// ParseReport parses run report content.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report JSON: %w", err)
	}
	return &r, nil
}

// WriteReport writes the report as indented JSON with a trailing newline.
func WriteReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // report needs to be readable by CI
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
