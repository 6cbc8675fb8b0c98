package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jeffsharris/slidemaker/internal/logging"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = sign are skipped.
//   - Leading and trailing whitespace is trimmed from both key and value.
//   - A value wrapped in matching single or double quotes is unquoted.
//   - Keys not present in WhitelistedVars are ignored with a warning.
//
// Returns a map of whitelisted key-value pairs, or an error if the file
// cannot be opened.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first '=' only.
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))

		if !whitelistSet[key] {
			logging.Warn(fmt.Sprintf("%s: ignoring unknown config key %q", path, key))
			continue
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return result, nil
}

// LoadEnv collects whitelisted keys from environment entries of the form
// SLIDEMAKER_<KEY>=value. environ is usually os.Environ().
func LoadEnv(environ []string) map[string]string {
	result := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(name, EnvPrefix)
		if whitelistSet[key] {
			result[key] = value
		}
	}
	return result
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. Environment (env, from LoadEnv)
//  6. CLI overrides (cliOverrides map)
//
// Any path that is empty is skipped, and missing global or project files
// are not an error. An explicit file must exist.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, env, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, layer := range []struct {
		name     string
		path     string
		optional bool
	}{
		{"global config", globalPath, true},
		{"project config", projectPath, true},
		{"explicit config", explicitPath, false},
	} {
		if layer.path == "" {
			continue
		}
		m, err := LoadFile(layer.path)
		if err != nil {
			if layer.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", layer.name, err)
		}
		if err := ApplyMapToConfig(cfg, m); err != nil {
			return nil, fmt.Errorf("%s %s: %w", layer.name, layer.path, err)
		}
	}

	if err := ApplyMapToConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := ApplyMapToConfig(cfg, cliOverrides); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	cfg.ConfigFile = explicitPath
	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Keys must use the WhitelistedVars naming convention (e.g., "IMAGE_MODEL").
// Unknown keys are ignored. A numeric, boolean or duration value that
// does not parse is an error naming the key.
func ApplyMapToConfig(cfg *Config, m map[string]string) error {
	var errs []error
	for key, value := range m {
		var err error
		switch key {
		case "IMAGE_MODEL":
			cfg.ImageModel = value
		case "GRADER_MODEL":
			cfg.GraderModel = value
		case "IMAGE_QUALITY":
			cfg.Quality = strings.ToLower(value)
		case "IMAGE_BACKGROUND":
			cfg.Background = strings.ToLower(value)
		case "MAX_ATTEMPTS":
			cfg.MaxAttempts, err = strconv.Atoi(value)
		case "CONCURRENCY":
			cfg.Concurrency, err = strconv.Atoi(value)
		case "RETRY_BASE_DELAY":
			cfg.RetryBaseDelay, err = ParseDuration(value)
		case "RETRY_MAX_DELAY":
			cfg.RetryMaxDelay, err = ParseDuration(value)
		case "MAX_RETRIES":
			cfg.MaxRetries, err = strconv.Atoi(value)
		case "REQUEST_TIMEOUT":
			cfg.RequestTimeout, err = ParseDuration(value)
		case "OPENAI_BASE_URL":
			cfg.OpenAIBaseURL = value
		case "RUNS_DIR":
			cfg.RunsDir = value
		case "VERBOSE":
			cfg.Verbose, err = parseBool(value)
		case "NOTIFY_WEBHOOK":
			cfg.NotifyWebhook = value
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", key, value, err))
		}
	}
	return errors.Join(errs...)
}

// ParseDuration accepts Go duration strings ("1.5s", "2m") and bare
// numbers, which are read as seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// parseBool interprets common boolean representations.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
