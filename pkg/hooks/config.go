// Package hooks runs user commands around a Markdown export. Hooks live in
// hooks.yaml next to config.yaml and run before (pre-export) or after
// (post-export) the file is written.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Phase says when a hook runs.
type Phase string

const (
	// PreExport runs before the file is written. Failure cancels the export.
	PreExport Phase = "pre-export"
	// PostExport runs after the file is written. Failure is reported only.
	PostExport Phase = "post-export"
)

// On-error policies.
const (
	OnErrorFail     = "fail"
	OnErrorContinue = "continue"
)

// FileName is the hooks file inside the config directory.
const FileName = "hooks.yaml"

// DefaultTimeout applies when a hook sets none.
const DefaultTimeout = 30 * time.Second

// Hook is one configured command.
type Hook struct {
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"`
	Timeout time.Duration     `yaml:"timeout,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	OnError string            `yaml:"on_error,omitempty"`
}

// Config is the parsed hooks file.
type Config struct {
	Hooks ByPhase `yaml:"hooks"`
}

// ByPhase groups hooks by phase.
type ByPhase struct {
	PreExport  []Hook `yaml:"pre-export,omitempty"`
	PostExport []Hook `yaml:"post-export,omitempty"`
}

// Get returns the hooks of one phase.
func (c *Config) Get(phase Phase) []Hook {
	if c == nil {
		return nil
	}
	switch phase {
	case PreExport:
		return c.Hooks.PreExport
	case PostExport:
		return c.Hooks.PostExport
	}
	return nil
}

// Empty reports whether no hook is configured.
func (c *Config) Empty() bool {
	return c == nil || len(c.Hooks.PreExport)+len(c.Hooks.PostExport) == 0
}

// ExportContext is passed to every hook as AHKAM_* environment variables.
type ExportContext struct {
	ExportPath   string
	ExportFormat string
	ChapterCount int
	Timestamp    time.Time
}

// ToEnv converts the context to environment entries.
func (c ExportContext) ToEnv() []string {
	return []string{
		"AHKAM_EXPORT_PATH=" + c.ExportPath,
		"AHKAM_EXPORT_FORMAT=" + c.ExportFormat,
		fmt.Sprintf("AHKAM_CHAPTER_COUNT=%d", c.ChapterCount),
		"AHKAM_TIMESTAMP=" + c.Timestamp.Format(time.RFC3339),
	}
}

// Load reads dir/hooks.yaml. A missing file yields an empty config. The
// returned warnings name hooks that were skipped.
func Load(dir string) (*Config, []string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil, nil
		}
		return nil, nil, fmt.Errorf("reading hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var warnings []string
	cfg.Hooks.PreExport, warnings = normalize(cfg.Hooks.PreExport, PreExport, warnings)
	cfg.Hooks.PostExport, warnings = normalize(cfg.Hooks.PostExport, PostExport, warnings)
	return &cfg, warnings, nil
}

// normalize fills defaults and drops hooks without a command.
func normalize(hooks []Hook, phase Phase, warnings []string) ([]Hook, []string) {
	var out []Hook
	for i, h := range hooks {
		if strings.TrimSpace(h.Command) == "" {
			warnings = append(warnings, fmt.Sprintf("%s hook %d has empty command; skipping", phase, i+1))
			continue
		}
		if h.Timeout <= 0 {
			h.Timeout = DefaultTimeout
		}
		if h.OnError == "" {
			h.OnError = OnErrorContinue
			if phase == PreExport {
				h.OnError = OnErrorFail
			}
		}
		if h.Name == "" {
			h.Name = fmt.Sprintf("%s-%d", phase, i+1)
		}
		out = append(out, h)
	}
	return out, warnings
}

// UnmarshalYAML accepts timeouts as durations ("5s") or bare seconds ("30").
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name    string            `yaml:"name"`
		Command string            `yaml:"command"`
		Timeout string            `yaml:"timeout,omitempty"`
		Env     map[string]string `yaml:"env,omitempty"`
		OnError string            `yaml:"on_error,omitempty"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*h = Hook{Name: raw.Name, Command: raw.Command, Env: raw.Env, OnError: raw.OnError}
	if raw.Timeout == "" {
		return nil
	}
	if d, err := time.ParseDuration(raw.Timeout); err == nil {
		h.Timeout = d
		return nil
	}
	var seconds float64
	if _, err := fmt.Sscanf(raw.Timeout, "%f", &seconds); err != nil {
		return fmt.Errorf("invalid timeout %q", raw.Timeout)
	}
	h.Timeout = time.Duration(seconds * float64(time.Second))
	return nil
}
