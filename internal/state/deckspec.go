package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jeffsharris/slidemaker/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("image_size", func(fl validator.FieldLevel) bool {
		return model.ValidateImageSize(fl.Field().String()) == nil
	})
	return v
}

// DeckSpec is the YAML document accepted by `slidemaker init --spec-file`.
type DeckSpec struct {
	Spec   `yaml:",inline"`
	Slides []Slide `yaml:"slides"`
}

// LoadDeckSpec reads and validates a YAML deck spec.
func LoadDeckSpec(path string) (*DeckSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck spec: %w", err)
	}
	var deck DeckSpec
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parse deck spec: %w", err)
	}
	if err := ValidateSpec(deck.Spec); err != nil {
		return nil, err
	}
	for i, s := range deck.Slides {
		if strings.TrimSpace(s.Title) == "" && strings.TrimSpace(s.Intent) == "" {
			return nil, fmt.Errorf("deck spec slide %d: title or intent is required", i+1)
		}
	}
	return &deck, nil
}

// ValidateSpec checks the required deck-level fields.
func ValidateSpec(spec Spec) error {
	err := validate.Struct(spec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate spec: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "image_size":
			msgs = append(msgs, fmt.Sprintf("%s %q must look like 1536x1024", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid spec: %s", strings.Join(msgs, "; "))
}
