// Package model provides image and grader model helpers for slidemaker.
//
// It centralises default model names, model-name sanity checks and the
// mapping from a deck's aspect ratio to an image size the generator
// understands.
package model

// Default models and render settings.
const (
	DefaultImageModel  = "gpt-image-1.5"
	DefaultGraderModel = "gpt-5.1"
	DefaultQuality     = "auto"
	DefaultBackground  = "opaque"
	DefaultImageSize   = "1536x1024"
)

// Image sizes supported by the generator.
const (
	SizeLandscape = "1536x1024"
	SizeSquare    = "1024x1024"
	SizePortrait  = "1024x1536"
)

