package prompt

import (
	"fmt"
	"strings"
)

const (
	stylePrefix = "Cute, kid-friendly illustration, bright flat colors, round edges"
	styleSuffix = "clean white background, high contrast, centered, no text, minimal shadows"
)

// nounHints gives a visual anchor to nouns without an obvious silhouette
var nounHints = map[string]string{
	"rice":  "a small white bowl filled with cooked rice",
	"milk":  "a transparent glass filled with milk",
	"bread": "a loaf of bread with a few slices",
	"juice": "a glass of orange juice with a straw",
	"cake":  "a small round cake with simple frosting",
}

var actions = map[string]bool{
	"run":   true,
	"jump":  true,
	"sleep": true,
	"eat":   true,
	"drink": true,
}

// IsAction reports whether the word is drawn as a character doing something
func IsAction(word string) bool {
	return actions[normalize(word)]
}

// Build turns a word into an image generation prompt
func Build(word string) string {
	w := normalize(word)

	var core string
	switch {
	case actions[w]:
		core = fmt.Sprintf("a simple friendly kid character doing the action %q", w)
	case nounHints[w] != "":
		core = nounHints[w]
	default:
		core = fmt.Sprintf("an illustration of %q", w)
	}

	return strings.Join([]string{stylePrefix, core, styleSuffix}, ", ")
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
