package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "psyhunter.yml"
	DefaultEnvFile    = ".env"

	envProfile     = "PSYHUNTER_PROFILE"
	envTrace       = "PSYHUNTER_TRACE"
	envPolicies    = "PSYHUNTER_POLICIES"
	envFormat      = "PSYHUNTER_FORMAT"
	envSummaryFile = "PSYHUNTER_SUMMARY_FILE"
	envListen      = "PSYHUNTER_LISTEN"
	envNoColor     = "PSYHUNTER_NO_COLOR"
	envLogLevel    = "PSYHUNTER_LOG_LEVEL"
	envLogFormat   = "PSYHUNTER_LOG_FORMAT"
)

// Output formats understood by the report-producing commands.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Loader merges configuration coming from files, environment variables, and CLI flags.
type Loader struct {
	ConfigPath string
	// EnvFile is an optional dotenv file. Variables already set in the
	// process environment take precedence over it.
	EnvFile string
}

// RuntimeConfig contains the fully merged settings required by the sub-commands.
type RuntimeConfig struct {
	ProfilePath string
	TracePath   string
	Policies    []string
	Format      string
	SummaryFile string
	ListenAddr  string
	NoColor     bool
	LogLevel    string
	LogFormat   string
}

// Overrides captures values coming from the config file, env vars or CLI flags.
type Overrides struct {
	ProfilePath string
	TracePath   string
	Policies    []string
	Format      string
	SummaryFile string
	ListenAddr  string
	NoColor     *bool
	LogLevel    string
	LogFormat   string
}

// DefaultRuntimeConfig returns the baseline configuration when no overrides are provided.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ProfilePath: "target_data.json",
		TracePath:   "digital_trace.json",
		Policies:    []string{"console"},
		Format:      FormatText,
		ListenAddr:  "127.0.0.1:8501",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load resolves the final runtime configuration.
// Precedence, lowest first: defaults, config file, dotenv file, process env, flags.
func (l Loader) Load(override Overrides) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	if fileExists(path) {
		fileOv, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.apply(fileOv)
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return cfg, err
	}

	cfg.apply(overridesFromEnv(func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return dotenv[key]
	}))

	cfg.apply(override)

	return cfg, nil
}

// Validate ensures the config contains usable values.
func (c RuntimeConfig) Validate() error {
	if len(c.Policies) == 0 {
		return errors.New("at least one scoring policy must be specified")
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("unsupported format %q (want text, json or ndjson)", c.Format)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}

	return ValidateListenAddr(c.ListenAddr)
}

// ValidateListenAddr accepts only loopback host:port pairs; the dashboard
// is a local session.
func ValidateListenAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if port == "" {
		return fmt.Errorf("listen address %q has no port", addr)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("listen address %q must be a loopback address", addr)
	}
	return nil
}

func (c *RuntimeConfig) apply(src Overrides) {
	if src.ProfilePath != "" {
		c.ProfilePath = src.ProfilePath
	}

	if src.TracePath != "" {
		c.TracePath = src.TracePath
	}

	if len(src.Policies) > 0 {
		c.Policies = cleanList(src.Policies)
	}

	if src.Format != "" {
		c.Format = strings.ToLower(src.Format)
	}

	if src.SummaryFile != "" {
		c.SummaryFile = src.SummaryFile
	}

	if src.ListenAddr != "" {
		c.ListenAddr = src.ListenAddr
	}

	if src.NoColor != nil {
		c.NoColor = *src.NoColor
	}

	if src.LogLevel != "" {
		c.LogLevel = src.LogLevel
	}

	if src.LogFormat != "" {
		c.LogFormat = src.LogFormat
	}
}

func (l Loader) readEnvFile() (map[string]string, error) {
	path := l.EnvFile
	if path == "" {
		path = DefaultEnvFile
	}
	if !fileExists(path) {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", path, err)
	}
	return values, nil
}

func loadFromFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, err
	}

	type rawConfig struct {
		Profile     string     `yaml:"profile"`
		Trace       string     `yaml:"trace"`
		Policies    policyList `yaml:"policies"`
		Format      string     `yaml:"format"`
		SummaryFile string     `yaml:"summaryFile"`
		Listen      string     `yaml:"listen"`
		NoColor     *bool      `yaml:"noColor"`
		Log         struct {
			Level  string `yaml:"level"`
			Format string `yaml:"format"`
		} `yaml:"log"`
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Overrides{}, err
	}

	return Overrides{
		ProfilePath: raw.Profile,
		TracePath:   raw.Trace,
		Policies:    raw.Policies,
		Format:      raw.Format,
		SummaryFile: raw.SummaryFile,
		ListenAddr:  raw.Listen,
		NoColor:     raw.NoColor,
		LogLevel:    raw.Log.Level,
		LogFormat:   raw.Log.Format,
	}, nil
}

func overridesFromEnv(getenv func(string) string) Overrides {
	ov := Overrides{}

	if value := getenv(envProfile); value != "" {
		ov.ProfilePath = value
	}

	if value := getenv(envTrace); value != "" {
		ov.TracePath = value
	}

	if value := getenv(envPolicies); value != "" {
		ov.Policies = ParseList(value)
	}

	if value := getenv(envFormat); value != "" {
		ov.Format = value
	}

	if value := getenv(envSummaryFile); value != "" {
		ov.SummaryFile = value
	}

	if value := getenv(envListen); value != "" {
		ov.ListenAddr = value
	}

	if value := getenv(envNoColor); value != "" {
		parsed := strings.EqualFold(value, "true") || value == "1"
		ov.NoColor = &parsed
	}

	if value := getenv(envLogLevel); value != "" {
		ov.LogLevel = value
	}

	if value := getenv(envLogFormat); value != "" {
		ov.LogFormat = value
	}

	return ov
}

// ParseList splits comma, space or newline separated input.
func ParseList(input string) []string {
	return splitOnDelimiters(input, []rune{',', '\n', '\r', ' '})
}

func splitOnDelimiters(input string, delims []rune) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	separator := func(r rune) bool {
		for _, d := range delims {
			if r == d {
				return true
			}
		}
		return false
	}

	return cleanList(strings.FieldsFunc(trimmed, separator))
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		candidate := strings.ToLower(strings.TrimSpace(v))
		if candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// policyList enables YAML fields that can be specified as a scalar or sequence.
type policyList []string

func (p *policyList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var out []string
		for _, node := range value.Content {
			out = append(out, node.Value)
		}
		*p = cleanList(out)
	case yaml.ScalarNode:
		*p = ParseList(value.Value)
	default:
		return fmt.Errorf("unsupported YAML type for policies")
	}
	return nil
}
