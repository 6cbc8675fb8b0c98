package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffsharris/slidemaker/internal/config"
)

func init() {
	color.NoColor = true
}

// writeFile is a test helper that creates a temporary file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFileBasicKeyValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "IMAGE_MODEL=gpt-image-1\nCONCURRENCY=2\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-image-1", m["IMAGE_MODEL"])
	assert.Equal(t, "2", m["CONCURRENCY"])
}

func TestLoadFileSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "# models\n\nGRADER_MODEL=gpt-5.1\n\n# done\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, m, 1)
	assert.Equal(t, "gpt-5.1", m["GRADER_MODEL"])
}

func TestLoadFileTrimsWhitespaceAndQuotes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "  RUNS_DIR  =  \"my runs\"  \nIMAGE_QUALITY='high'\nIMAGE_BACKGROUND=\"auto\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "my runs", m["RUNS_DIR"])
	assert.Equal(t, "high", m["IMAGE_QUALITY"])
	assert.Equal(t, `"auto`, m["IMAGE_BACKGROUND"], "unbalanced quotes are kept")
}

func TestLoadFileSkipsUnknownKeysAndLinesWithoutEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "CONCURRENCY=3\nOPENAI_API_KEY=sk-secret\nno equals here\nBOGUS=1\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"CONCURRENCY": "3"}, m)
}

func TestLoadFileValueWithEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "NOTIFY_WEBHOOK=http://host:8080/path?key=val\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://host:8080/path?key=val", m["NOTIFY_WEBHOOK"])
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.LoadFile("/nonexistent/path/config")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// LoadEnv tests
// ---------------------------------------------------------------------------

func TestLoadEnv(t *testing.T) {
	m := config.LoadEnv([]string{
		"SLIDEMAKER_CONCURRENCY=6",
		"SLIDEMAKER_VERBOSE=true",
		"SLIDEMAKER_UNKNOWN=x",
		"CONCURRENCY=9",
		"PATH=/usr/bin",
		"SLIDEMAKER_RUNS_DIR=a=b",
	})

	assert.Equal(t, map[string]string{
		"CONCURRENCY": "6",
		"VERBOSE":     "true",
		"RUNS_DIR":    "a=b",
	}, m)
}

// ---------------------------------------------------------------------------
// Precedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceDefaultsOnly(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadWithPrecedenceLayers(t *testing.T) {
	dir := t.TempDir()
	globalPath := writeFile(t, dir, "global", "IMAGE_MODEL=gpt-image-1\nCONCURRENCY=2\nMAX_ATTEMPTS=3\nRUNS_DIR=/g\n")
	projectPath := writeFile(t, dir, "project", "CONCURRENCY=5\nMAX_ATTEMPTS=4\nRUNS_DIR=/p\n")
	explicitPath := writeFile(t, dir, "explicit", "MAX_ATTEMPTS=10\nRUNS_DIR=/e\n")
	env := map[string]string{"RUNS_DIR": "/env", "VERBOSE": "1"}
	cli := map[string]string{"VERBOSE": "false"}

	cfg, err := config.LoadWithPrecedence(globalPath, projectPath, explicitPath, env, cli)
	require.NoError(t, err)

	assert.Equal(t, "gpt-image-1", cfg.ImageModel, "global")
	assert.Equal(t, 5, cfg.Concurrency, "project beats global")
	assert.Equal(t, 10, cfg.MaxAttempts, "explicit beats project")
	assert.Equal(t, "/env", cfg.RunsDir, "env beats files")
	assert.False(t, cfg.Verbose, "flags beat env")
	assert.Equal(t, explicitPath, cfg.ConfigFile)
	assert.Equal(t, "gpt-5.1", cfg.GraderModel, "unset keys keep defaults")
}

func TestLoadWithPrecedenceMissingOptionalFilesAreNotErrors(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("/nonexistent/global", "/nonexistent/project", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadWithPrecedenceMissingExplicitIsError(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", "/nonexistent/explicit/config", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explicit config")
}

func TestLoadWithPrecedenceDirectoryAsConfig(t *testing.T) {
	dirPath := filepath.Join(t.TempDir(), "config-dir")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	_, err := config.LoadWithPrecedence(dirPath, "", "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global config")
}

func TestLoadWithPrecedenceBadValueNamesLayer(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeFile(t, dir, "project", "CONCURRENCY=many\n")

	_, err := config.LoadWithPrecedence("", projectPath, "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
	assert.Contains(t, err.Error(), "CONCURRENCY")

	_, err = config.LoadWithPrecedence("", "", "", map[string]string{"VERBOSE": "maybe"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfigSetsAllFields(t *testing.T) {
	cfg := config.NewDefaultConfig()
	err := config.ApplyMapToConfig(cfg, map[string]string{
		"IMAGE_MODEL":      "dall-e-3",
		"GRADER_MODEL":     "gpt-4.1",
		"IMAGE_QUALITY":    "HIGH",
		"IMAGE_BACKGROUND": "Transparent",
		"MAX_ATTEMPTS":     "0",
		"CONCURRENCY":      "8",
		"RETRY_BASE_DELAY": "500ms",
		"RETRY_MAX_DELAY":  "10",
		"MAX_RETRIES":      "2",
		"REQUEST_TIMEOUT":  "2m",
		"OPENAI_BASE_URL":  "http://localhost:9000/v1",
		"RUNS_DIR":         "/tmp/runs",
		"VERBOSE":          "yes",
		"NOTIFY_WEBHOOK":   "https://example.com/hook",
	})
	require.NoError(t, err)

	assert.Equal(t, "dall-e-3", cfg.ImageModel)
	assert.Equal(t, "gpt-4.1", cfg.GraderModel)
	assert.Equal(t, "high", cfg.Quality)
	assert.Equal(t, "transparent", cfg.Background)
	assert.Equal(t, 0, cfg.MaxAttempts)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 10*time.Second, cfg.RetryMaxDelay)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:9000/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "/tmp/runs", cfg.RunsDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "https://example.com/hook", cfg.NotifyWebhook)
	assert.NoError(t, cfg.Validate())
}

func TestApplyMapToConfigInvalidValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	err := config.ApplyMapToConfig(cfg, map[string]string{
		"MAX_ATTEMPTS":     "lots",
		"RETRY_BASE_DELAY": "soon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ATTEMPTS")
	assert.Contains(t, err.Error(), "RETRY_BASE_DELAY")
}

func TestApplyMapToConfigNilMap(t *testing.T) {
	cfg := config.NewDefaultConfig()
	assert.NoError(t, config.ApplyMapToConfig(cfg, nil))
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"1s", time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"30", 30 * time.Second, false},
		{"250ms", 250 * time.Millisecond, false},
		{"0", 0, false},
		{"later", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
