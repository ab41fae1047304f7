package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/docket/internal/credentialing"
)

// ReadApplicant reads a JSON application record.
func ReadApplicant(path string) (credentialing.Applicant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return credentialing.Applicant{}, fmt.Errorf("read %s: %w", path, err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return credentialing.Applicant{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return credentialing.NewApplicant(record)
}

// ReadPolicy reads policy rules from a JSON or YAML file, chosen by extension.
func ReadPolicy(path string) (credentialing.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return credentialing.Policy{}, fmt.Errorf("read %s: %w", path, err)
	}

	rules := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &rules)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rules)
	default:
		return credentialing.Policy{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return credentialing.Policy{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return credentialing.Policy{Rules: rules}, nil
}
