package domain

// Config mirrors ~/.ollash/config.yaml.
type Config struct {
	ConfigFormatVersion string      `yaml:"config_format_version"`
	Model               string      `yaml:"model"`
	URL                 string      `yaml:"url"`
	Temperature         float64     `yaml:"temperature"`
	SafetyLevel         SafetyLevel `yaml:"safety_level"`
	AutoConfirm         bool        `yaml:"auto_confirm"`
	HistoryEnabled      bool        `yaml:"history_enabled"`
	MaxHistory          int         `yaml:"max_history"`
	Verbose             bool        `yaml:"verbose"`
	RulesFile           string      `yaml:"rules_file,omitempty"`
	TimeoutSeconds      int         `yaml:"timeout,omitempty"`
	Shell               string      `yaml:"shell,omitempty"`
}

// ConfigKey names one externally settable configuration value.
type ConfigKey string

// The fixed key set exposed through `config get` / `config set`.
// Anything outside this list is rejected.
const (
	KeyModel          ConfigKey = "model"
	KeyURL            ConfigKey = "url"
	KeyTemperature    ConfigKey = "temperature"
	KeySafetyLevel    ConfigKey = "safety_level"
	KeyAutoConfirm    ConfigKey = "auto_confirm"
	KeyHistoryEnabled ConfigKey = "history_enabled"
	KeyMaxHistory     ConfigKey = "max_history"
	KeyVerbose        ConfigKey = "verbose"
)

// ConfigKeys returns the settable keys in display order.
func ConfigKeys() []ConfigKey {
	return []ConfigKey{
		KeyModel, KeyURL, KeyTemperature, KeySafetyLevel,
		KeyAutoConfirm, KeyHistoryEnabled, KeyMaxHistory, KeyVerbose,
	}
}
