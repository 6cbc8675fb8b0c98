package model

import (
	"fmt"
	"regexp"
	"strings"
)

// imageModelRe matches model names that produce images.
var imageModelRe = regexp.MustCompile(`^(gpt-image|dall-e|chatgpt-image)`)

var reasoningModelRe = regexp.MustCompile(`^o[0-9]`)

var sizeRe = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// ValidateModels checks that the image model can generate images and the
// grader model is not an image-only model.
//
// Rules:
//   - Empty models are always allowed (the caller will apply defaults).
//   - An image model must look like gpt-image-*, dall-e-* or
//     chatgpt-image-*, unless it is unrecognised (custom deployments).
//   - A grader model must not look like an image model.
func ValidateModels(imageModel, graderModel string) error {
	if graderModel != "" && IsImageModelHint(graderModel) {
		return fmt.Errorf("grader-model %q looks like an image model; grading needs a vision-capable text model", graderModel)
	}
	if imageModel != "" && IsTextModelHint(imageModel) {
		return fmt.Errorf("image-model %q looks like a text model; use an image model such as %s", imageModel, DefaultImageModel)
	}
	return nil
}

// IsImageModelHint reports whether model looks like an image generator.
func IsImageModelHint(model string) bool {
	return imageModelRe.MatchString(strings.ToLower(model))
}

// IsTextModelHint reports whether model looks like a text/vision model.
func IsTextModelHint(model string) bool {
	lower := strings.ToLower(model)
	if IsImageModelHint(lower) {
		return false
	}
	return strings.HasPrefix(lower, "gpt-") || reasoningModelRe.MatchString(lower)
}

// ValidateImageSize checks a WIDTHxHEIGHT size.
func ValidateImageSize(size string) error {
	if sizeRe.MatchString(size) {
		return nil
	}
	return fmt.Errorf("image size %q must look like %s", size, DefaultImageSize)
}
