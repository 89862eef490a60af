package placeholder

import (
	"bytes"
	"html"
)

// Ext is the file extension of placeholder assets
const Ext = ".svg"

// SVG renders the fallback card for a word: grey background, a neutral circle, and the word centered below.
// Output depends only on the word.
func SVG(word string) []byte {
	var b bytes.Buffer
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="600" height="400" viewBox="0 0 600 400">`)
	b.WriteString("\n  ")
	b.WriteString(`<rect width="100%" height="100%" fill="#f7f7f7"/>`)
	b.WriteString("\n  ")
	b.WriteString(`<circle cx="300" cy="180" r="110" fill="#c0c0c0" opacity="0.7"/>`)
	b.WriteString("\n  ")
	b.WriteString(`<text x="300" y="350" text-anchor="middle" font-family="Arial, sans-serif" font-size="48" fill="#333">`)
	b.WriteString(html.EscapeString(word))
	b.WriteString("</text>\n</svg>\n")
	return b.Bytes()
}
