package render

import "strings"

// Wrap keeps the first lineLength characters on the first line and wraps the
// remainder into lines of at most lineLength+indent characters, each prefixed
// with indent spaces. Every line, including the last, ends with "\n".
func Wrap(text string, lineLength, indent int) string {
	if lineLength <= 0 {
		lineLength = defaultWidth - indent
	}
	if indent < 0 {
		indent = 0
	}

	runes := []rune(text)
	if len(runes) <= lineLength {
		return text + "\n"
	}

	var b strings.Builder
	b.WriteString(string(runes[:lineLength]))
	b.WriteString("\n")

	prefix := strings.Repeat(" ", indent)
	for _, line := range wrapWords(string(runes[lineLength:]), lineLength) {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// wrapWords splits text on whitespace into lines no longer than width runes,
// breaking words that are longer than width.
func wrapWords(text string, width int) []string {
	var (
		lines   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > 0 {
			space := 0
			if len(current) > 0 {
				space = 1
			}
			if len(current)+space+len(w) <= width {
				if space == 1 {
					current = append(current, ' ')
				}
				current = append(current, w...)
				w = nil
				continue
			}
			if len(current) > 0 {
				flush()
				continue
			}
			current = append(current, w[:width]...)
			w = w[width:]
			flush()
		}
	}
	flush()
	return lines
}
