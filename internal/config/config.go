package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/juparave/quorum/internal/util"
)

// ValidCritics are the critic names configuration may reference.
// Names listed here may still be unimplemented; the supervisor skips
// those with a warning at dispatch time.
var ValidCritics = map[string]bool{
	"correctness":  true,
	"security":     true,
	"completeness": true,
	"architecture": true,
	"delegation":   true,
	"style":        true,
	"tester":       true,
}

// ValidDepths are the supported depth profile names.
var ValidDepths = map[string]bool{
	"quick":    true,
	"standard": true,
	"thorough": true,
}

// ProviderConfig holds judgment-source settings
type ProviderConfig struct {
	Name    string `yaml:"name"`     // openai, googleai
	Model   string `yaml:"model"`    // default model if tiers are unset
	APIKey  string `yaml:"api_key"`  // falls back to env vars
	BaseURL string `yaml:"base_url"` // custom OpenAI-compatible endpoint
}

// Config holds the runtime configuration for a validation run
type Config struct {
	Critics      []string          `yaml:"critics"`
	Provider     ProviderConfig    `yaml:"provider"`
	ModelTier1   string            `yaml:"model_tier1"` // strong model, judgment-heavy roles
	ModelTier2   string            `yaml:"model_tier2"` // efficient model, critics default here
	MaxFixLoops  int               `yaml:"max_fix_loops"`
	DepthProfile string            `yaml:"depth_profile"`
	Temperature  float64           `yaml:"temperature"`
	MaxTokens    int               `yaml:"max_tokens"`
	APIKeys      map[string]string `yaml:"api_keys"`
	RunsDir      string            `yaml:"runs_dir"`
	Verbose      bool              `yaml:"-"` // set via CLI only
}

// DefaultConfig returns the configuration for a depth profile
func DefaultConfig(depth string) *Config {
	cfg := &Config{
		Critics:      []string{"correctness"},
		Provider:     ProviderConfig{Name: "googleai"},
		ModelTier1:   "gemini-2.0-pro",
		ModelTier2:   "gemini-2.0-flash",
		DepthProfile: depth,
		Temperature:  0.1,
		MaxTokens:    4096,
		RunsDir:      "quorum-runs",
	}
	switch depth {
	case "standard":
		cfg.Critics = []string{"correctness", "completeness"}
	case "thorough":
		cfg.Critics = []string{"correctness", "completeness", "security"}
		cfg.Temperature = 0.0
	}
	return cfg
}

// Load reads configuration for the given depth, merging an optional
// config file over the profile defaults.
func Load(path, depth string) (*Config, error) {
	if depth == "" {
		depth = "quick"
	}
	if !ValidDepths[depth] {
		return nil, fmt.Errorf("unknown depth profile %q (valid: quick, standard, thorough)", depth)
	}

	cfg := DefaultConfig(depth)

	if path == "" {
		// Look for a profile file next to the working directory
		candidate := filepath.Join("configs", depth+".yaml")
		if util.FileExists(candidate) {
			path = candidate
		}
	}
	if path == "" {
		return cfg, nil
	}

	path = util.ExpandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.resolveAPIKeys()
	return cfg, nil
}

// resolveAPIKeys replaces "$ENV_NAME" values with the environment value.
func (c *Config) resolveAPIKeys() {
	for name, val := range c.APIKeys {
		if strings.HasPrefix(val, "$") {
			c.APIKeys[name] = os.Getenv(val[1:])
		}
	}
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if len(c.Critics) == 0 {
		return fmt.Errorf("at least one critic is required")
	}
	var invalid []string
	for _, name := range c.Critics {
		if !ValidCritics[name] {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("unknown critics: %s (valid: %s)",
			strings.Join(invalid, ", "), strings.Join(validCriticNames(), ", "))
	}
	if !ValidDepths[c.DepthProfile] {
		return fmt.Errorf("depth_profile must be one of: quick, standard, thorough")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2]")
	}
	if c.MaxFixLoops < 0 || c.MaxFixLoops > 3 {
		return fmt.Errorf("max_fix_loops must be in [0, 3]")
	}
	return nil
}

// CriticModel returns the model identifier critics should use.
func (c *Config) CriticModel() string {
	if c.ModelTier2 != "" {
		return c.ModelTier2
	}
	return c.Provider.Model
}

func validCriticNames() []string {
	names := make([]string, 0, len(ValidCritics))
	for name := range ValidCritics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
