package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/jackzampolin/nsb/internal/lint"
)

// Config holds nsb configuration.
// Stored at: ~/.nsb/config.yaml or ./config.yaml
type Config struct {
	// Column names in the question table (matched case-insensitively).
	QuestionColumn string `mapstructure:"question_column" json:"question_column" yaml:"question_column"`
	TUBColumn      string `mapstructure:"tub_column" json:"tub_column" yaml:"tub_column"`
	SubjectColumn  string `mapstructure:"subject_column" json:"subject_column" yaml:"subject_column"`
	QuesColumn     string `mapstructure:"ques_column" json:"ques_column" yaml:"ques_column"`
	LODColumn      string `mapstructure:"lod_column" json:"lod_column" yaml:"lod_column"`

	Workers          int       `mapstructure:"workers" json:"workers" yaml:"workers"`                               // Concurrent cells (0 = one per CPU)
	NormalizeColumns bool      `mapstructure:"normalize_columns" json:"normalize_columns" yaml:"normalize_columns"` // Normalize companion column cells
	Colors           ColorsCfg `mapstructure:"colors" json:"colors" yaml:"colors"`
}

// ColorsCfg sets highlight colors per defect severity.
type ColorsCfg struct {
	Parse     string `mapstructure:"parse" json:"parse" yaml:"parse"`
	Structure string `mapstructure:"structure" json:"structure" yaml:"structure"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		QuestionColumn:   "Question",
		TUBColumn:        "TUB",
		SubjectColumn:    "Subject",
		QuesColumn:       "Ques",
		LODColumn:        "LOD",
		Workers:          runtime.NumCPU(),
		NormalizeColumns: true,
		Colors: ColorsCfg{
			Parse:     string(lint.ColorRed),
			Structure: string(lint.ColorYellow),
		},
	}
}

// LintColors converts the color settings for the linter.
func (c *Config) LintColors() lint.Colors {
	return lint.Colors{
		Parse:     lint.Color(strings.ToLower(c.Colors.Parse)),
		Structure: lint.Color(strings.ToLower(c.Colors.Structure)),
	}
}

// Validate checks settings that would otherwise fail later in a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.QuestionColumn) == "" {
		return fmt.Errorf("question_column must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Colors.Parse == "" || c.Colors.Structure == "" {
		return fmt.Errorf("colors.parse and colors.structure must be set")
	}
	return nil
}
