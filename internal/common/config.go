package common

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joseph-ayodele/kobo-uploader/constants"
)

// Config holds all uploader configuration, decoded from a JSON config file.
// Field names follow the config keys of the original deployment.
type Config struct {
	DataSourcePath         string            `json:"data_source_path"`
	ProjectUUID            string            `json:"project_uuid"`
	Endpoint               string            `json:"endpoint"`
	Mapping                string            `json:"mapping"`
	BatchSize              int               `json:"batch_size"`
	ConcurrencyLevel       int               `json:"concurrency_level"`
	InterBatchPauseSeconds float64           `json:"inter_batch_pause_seconds"`
	MaxRetries             int               `json:"max_retries"`
	BackoffFactor          float64           `json:"backoff_factor"`
	RequestTimeoutSeconds  float64           `json:"request_timeout_seconds"`
	APIToken               string            `json:"api_token"`
	TokenLookupKey         string            `json:"token_lookup_key"`
	APITokenMap            map[string]string `json:"api_token_map"`
}

// EnvAPIToken is the fallback credential source when the config file carries
// neither an explicit token nor a resolvable lookup key.
const EnvAPIToken = "KOBO_API_TOKEN"

// configSchema rejects structurally invalid config files before decoding.
// Range checks (batch_size >= 1 etc.) live in Validate.
var configSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"data_source_path", "project_uuid", "batch_size"},
	"additionalProperties": false,
	"properties": map[string]any{
		"data_source_path":          map[string]any{"type": "string"},
		"project_uuid":              map[string]any{"type": "string"},
		"endpoint":                  map[string]any{"type": "string"},
		"mapping":                   map[string]any{"type": "string"},
		"batch_size":                map[string]any{"type": "integer"},
		"concurrency_level":         map[string]any{"type": "integer"},
		"inter_batch_pause_seconds": map[string]any{"type": "number"},
		"max_retries":               map[string]any{"type": "integer"},
		"backoff_factor":            map[string]any{"type": "number"},
		"request_timeout_seconds":   map[string]any{"type": "number"},
		"api_token":                 map[string]any{"type": "string"},
		"token_lookup_key":          map[string]any{"type": "string"},
		"api_token_map": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

// LoadConfig reads, schema-validates and decodes the JSON config file,
// then applies defaults. Any failure is a fatal CONFIG_ERROR.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewAppError(CodeConfigError, "read config file", err)
	}
	if err := ValidateJSONAgainstSchema(configSchema, raw); err != nil {
		return nil, NewAppError(CodeConfigError, "invalid config file", err)
	}
	cfg := &Config{
		Endpoint:               constants.DefaultEndpoint,
		Mapping:                constants.MappingDemographic,
		ConcurrencyLevel:       5,
		InterBatchPauseSeconds: 5,
		MaxRetries:             3,
		BackoffFactor:          0.3,
		RequestTimeoutSeconds:  30,
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, NewAppError(CodeConfigError, "decode config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewAppError(CodeConfigError, "validate config", err)
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("data_source_path", c.DataSourcePath, Required)
	v.Field("project_uuid", c.ProjectUUID, Required, UUID)
	v.Field("endpoint", c.Endpoint, Required)
	v.Field("batch_size", c.BatchSize, Positive)
	v.Field("concurrency_level", c.ConcurrencyLevel, Positive)
	v.Field("inter_batch_pause_seconds", c.InterBatchPauseSeconds, NonNegative)
	v.Field("max_retries", c.MaxRetries, NonNegative)
	v.Field("backoff_factor", c.BackoffFactor, NonNegative)
	v.Field("request_timeout_seconds", c.RequestTimeoutSeconds, NonNegative)
	switch c.Mapping {
	case constants.MappingDemographic, constants.MappingReception:
	default:
		v.Field("mapping", c.Mapping, func(f string, val interface{}) *ValidationError {
			return &ValidationError{Field: f, Value: val, Message: "unknown mapping variant"}
		})
	}
	return v.Error()
}

// ResolveToken resolves the API credential: explicit token first, then the
// lookup key against api_token_map, then the environment. Resolution failure
// is a fatal setup error.
func (c *Config) ResolveToken() (string, error) {
	if c.APIToken != "" {
		return c.APIToken, nil
	}
	if c.TokenLookupKey != "" {
		tok, ok := c.APITokenMap[c.TokenLookupKey]
		if !ok || tok == "" {
			return "", NewAppError(CodeConfigError, "unknown token lookup key: "+c.TokenLookupKey, ErrUnresolved)
		}
		return tok, nil
	}
	if tok := os.Getenv(EnvAPIToken); tok != "" {
		return tok, nil
	}
	return "", NewAppError(CodeConfigError, "no api_token, token_lookup_key or "+EnvAPIToken+" set", ErrUnresolved)
}

// InterBatchPause returns the configured pause as a duration.
func (c *Config) InterBatchPause() time.Duration {
	return time.Duration(c.InterBatchPauseSeconds * float64(time.Second))
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds * float64(time.Second))
}
