// Package config defines the slidemaker configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < SLIDEMAKER_* environment < CLI flag overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jeffsharris/slidemaker/internal/model"
)

// EnvPrefix prefixes every whitelisted key when read from the environment.
const EnvPrefix = "SLIDEMAKER_"

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are ignored during loading.
var WhitelistedVars = [14]string{
	"IMAGE_MODEL",
	"GRADER_MODEL",
	"IMAGE_QUALITY",
	"IMAGE_BACKGROUND",
	"MAX_ATTEMPTS",
	"CONCURRENCY",
	"RETRY_BASE_DELAY",
	"RETRY_MAX_DELAY",
	"MAX_RETRIES",
	"REQUEST_TIMEOUT",
	"OPENAI_BASE_URL",
	"RUNS_DIR",
	"VERBOSE",
	"NOTIFY_WEBHOOK",
}

// Config holds every configuration field for the slidemaker CLI.
type Config struct {
	// Remote models and image options.
	ImageModel  string `validate:"required"`
	GraderModel string `validate:"required"`
	Quality     string `validate:"oneof=auto low medium high"`
	Background  string `validate:"oneof=opaque transparent auto"`

	// Generation limits. MaxAttempts of 0 means unlimited.
	MaxAttempts int `validate:"gte=0"`
	Concurrency int `validate:"gte=1,lte=64"`

	// Retry policy for remote calls.
	RetryBaseDelay time.Duration `validate:"gt=0"`
	RetryMaxDelay  time.Duration `validate:"gtefield=RetryBaseDelay"`
	MaxRetries     int           `validate:"gte=0,lte=20"`
	RequestTimeout time.Duration `validate:"gte=0"`

	// Endpoints and paths.
	OpenAIBaseURL string `validate:"omitempty,url"`
	RunsDir       string `validate:"required"`

	// Runtime flags.
	Verbose bool

	// Notification settings.
	NotifyWebhook string `validate:"omitempty,url"`

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		ImageModel:     model.DefaultImageModel,
		GraderModel:    model.DefaultGraderModel,
		Quality:        model.DefaultQuality,
		Background:     model.DefaultBackground,
		MaxAttempts:    8,
		Concurrency:    4,
		RetryBaseDelay: time.Second,
		RetryMaxDelay:  30 * time.Second,
		MaxRetries:     6,
		RunsDir:        "runs",
	}
}

// fieldKeys maps struct field names back to their config keys for messages.
var fieldKeys = map[string]string{
	"ImageModel":     "IMAGE_MODEL",
	"GraderModel":    "GRADER_MODEL",
	"Quality":        "IMAGE_QUALITY",
	"Background":     "IMAGE_BACKGROUND",
	"MaxAttempts":    "MAX_ATTEMPTS",
	"Concurrency":    "CONCURRENCY",
	"RetryBaseDelay": "RETRY_BASE_DELAY",
	"RetryMaxDelay":  "RETRY_MAX_DELAY",
	"MaxRetries":     "MAX_RETRIES",
	"RequestTimeout": "REQUEST_TIMEOUT",
	"OpenAIBaseURL":  "OPENAI_BASE_URL",
	"RunsDir":        "RUNS_DIR",
	"NotifyWebhook":  "NOTIFY_WEBHOOK",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and enumerations, then the model pairing.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return model.ValidateModels(c.ImageModel, c.GraderModel)
}

func describe(fe validator.FieldError) string {
	key := fieldKeys[fe.Field()]
	if key == "" {
		key = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s %q is not a valid URL", key, fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must not be smaller than %s", key, fieldKeys[fe.Param()])
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}
