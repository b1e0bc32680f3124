package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/validation"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk layout of a scenario input file. A file holds
// either a list of named scenarios, an explicit base/modified pair, or both.
type ScenarioFile struct {
	Scenarios []domain.NamedInput     `yaml:"scenarios"`
	Base      *domain.EvaluationInput `yaml:"base,omitempty"`
	Modified  *domain.EvaluationInput `yaml:"modified,omitempty"`
}

// DeltaPair returns the base and modified inputs: the explicit pair when
// present, otherwise the first two scenarios.
func (f *ScenarioFile) DeltaPair() (domain.EvaluationInput, domain.EvaluationInput, error) {
	if f.Base != nil && f.Modified != nil {
		return *f.Base, *f.Modified, nil
	}
	if len(f.Scenarios) >= 2 {
		return f.Scenarios[0].Input, f.Scenarios[1].Input, nil
	}
	return domain.EvaluationInput{}, domain.EvaluationInput{}, &domain.InvalidInputError{
		Field:  "scenarios",
		Reason: "a delta needs base and modified inputs or at least two scenarios",
	}
}

// InputParser handles parsing of scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario YAML.
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &file, nil
}

// Validate checks every input in the file.
func (ip *InputParser) Validate(file *ScenarioFile) error {
	if len(file.Scenarios) == 0 && file.Base == nil && file.Modified == nil {
		return &domain.InvalidInputError{Field: "scenarios", Reason: "no scenarios provided"}
	}
	if (file.Base == nil) != (file.Modified == nil) {
		return &domain.InvalidInputError{Field: "base", Reason: "base and modified must be given together"}
	}
	if err := validation.ValidateScenarios(file.Scenarios); err != nil {
		return err
	}
	if file.Base != nil {
		if err := validation.ValidateInput(*file.Base); err != nil {
			return fmt.Errorf("base: %w", err)
		}
		if err := validation.ValidateInput(*file.Modified); err != nil {
			return fmt.Errorf("modified: %w", err)
		}
	}
	return nil
}
