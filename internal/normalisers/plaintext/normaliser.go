// Package plaintext normalises extracted document text before chunking.
package plaintext

import "strings"

// Normaliser collapses the whitespace noise that PDF and DOCX extraction
// leaves behind: runs of spaces and tabs become a single space, trailing
// whitespace is stripped, and consecutive blank lines are capped at one.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns the cleaned text. The result is trimmed; an input of
// pure whitespace yields the empty string.
func (n *Normaliser) Normalise(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	var b strings.Builder
	b.Grow(len(text))

	blankRun := 0
	for _, line := range lines {
		line = collapseSpaces(line)
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return strings.TrimSpace(b.String())
}

// collapseSpaces reduces runs of spaces and tabs to a single space and
// strips leading/trailing whitespace.
func collapseSpaces(line string) string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r'
	})
	return strings.Join(fields, " ")
}
