package model

import "strings"

var aspectSizes = map[string]string{
	"16:9":       SizeLandscape,
	"widescreen": SizeLandscape,
	"landscape":  SizeLandscape,
	"3:2":        SizeLandscape,
	"4:3":        SizeSquare,
	"1:1":        SizeSquare,
	"square":     SizeSquare,
	"3:4":        SizePortrait,
	"9:16":       SizePortrait,
	"2:3":        SizePortrait,
	"portrait":   SizePortrait,
	"tall":       SizePortrait,
}

// SizeForAspect maps an aspect ratio label to a generator size.
// Unknown labels get the landscape default.
func SizeForAspect(aspect string) string {
	key := strings.ToLower(strings.TrimSpace(aspect))
	if size, ok := aspectSizes[key]; ok {
		return size
	}
	return DefaultImageSize
}

// ResolveImageSize picks the size for one slide: the slide's own size,
// then the deck's size, then the aspect-ratio mapping.
func ResolveImageSize(slideSize, specSize, aspect string) string {
	if s := strings.TrimSpace(slideSize); s != "" {
		return s
	}
	if s := strings.TrimSpace(specSize); s != "" {
		return s
	}
	return SizeForAspect(aspect)
}
