package luminal

import (
	"strings"
	"unicode"
)

// TextMeasurer measures single-line text in pixels. FontAtlas implements it.
type TextMeasurer interface {
	MeasureText(text string) Vec2
	LineHeight() float32
}

// TextWrapMode specifies how text should be wrapped.
type TextWrapMode int

const (
	// WrapModeWord wraps at spaces; a word wider than the line is split.
	WrapModeWord TextWrapMode = iota
	// WrapModeChar wraps at any character.
	WrapModeChar
)

// WrapText wraps text to fit within maxWidth. Explicit newlines always
// start a new line, and an empty paragraph yields an empty line.
func WrapText(m TextMeasurer, text string, maxWidth float32, mode TextWrapMode) []string {
	if maxWidth <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		if mode == WrapModeChar {
			lines = append(lines, wrapByChar(m, para, maxWidth)...)
		} else {
			lines = append(lines, wrapByWord(m, para, maxWidth)...)
		}
	}
	return lines
}

func wrapByWord(m TextMeasurer, text string, maxWidth float32) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.MeasureText(candidate).X <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}
		if m.MeasureText(word).X <= maxWidth {
			current = word
			continue
		}
		// Word alone is too wide: split it and keep the tail open.
		parts := wrapByChar(m, word, maxWidth)
		lines = append(lines, parts[:len(parts)-1]...)
		current = parts[len(parts)-1]
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func wrapByChar(m TextMeasurer, text string, maxWidth float32) []string {
	var lines []string
	var current []rune

	for _, r := range text {
		next := append(current, r)
		if m.MeasureText(string(next)).X > maxWidth && len(current) > 0 {
			lines = append(lines, string(current))
			current = []rune{r}
			continue
		}
		current = next
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// WrapTextSmart wraps Latin runs at word boundaries and CJK runs at
// character boundaries. Runs of both kinds may share a line.
func WrapTextSmart(m TextMeasurer, text string, maxWidth float32) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapMixed(m, para, maxWidth)...)
	}
	return lines
}

func wrapMixed(m TextMeasurer, text string, maxWidth float32) []string {
	var lines []string
	current, sep := "", ""
	for _, run := range splitByScript(text) {
		mode := WrapModeWord
		if run.cjk {
			mode = WrapModeChar
		}
		if strings.HasPrefix(run.text, " ") {
			sep = " "
		}
		for i, line := range WrapText(m, run.text, maxWidth, mode) {
			if i == 0 && current != "" && m.MeasureText(current+sep+line).X <= maxWidth {
				current += sep + line
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = line
		}
		// Word runs lose their edge spaces when wrapped.
		sep = ""
		if strings.HasSuffix(run.text, " ") {
			sep = " "
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

type scriptRun struct {
	text string
	cjk  bool
}

// splitByScript splits text into maximal runs of CJK and non-CJK runes.
func splitByScript(text string) []scriptRun {
	var runs []scriptRun
	start := 0
	for i, r := range text {
		cjk := isCJKRune(r)
		if i > 0 && cjk != runs[len(runs)-1].cjk {
			start = i
		}
		if i == start {
			runs = append(runs, scriptRun{cjk: cjk})
		}
		runs[len(runs)-1].text += string(r)
	}
	return runs
}

func isCJKRune(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana,
		unicode.Hangul, unicode.Bopomofo, unicode.Yi)
}

// TruncateText shortens text to fit maxWidth, ending it with "..".
func TruncateText(m TextMeasurer, text string, maxWidth float32) string {
	return TruncateTextWithSuffix(m, text, maxWidth, "..")
}

// TruncateTextWithSuffix shortens text to fit maxWidth including suffix.
// If not even one rune fits, the suffix alone is returned.
func TruncateTextWithSuffix(m TextMeasurer, text string, maxWidth float32, suffix string) string {
	if m.MeasureText(text).X <= maxWidth {
		return text
	}

	target := maxWidth - m.MeasureText(suffix).X
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		if m.MeasureText(string(runes[:n])).X <= target {
			return string(runes[:n]) + suffix
		}
	}
	return suffix
}

// TextWidthEllipsis returns text that fits within maxWidth, trying ".."
// then "." and finally giving up with an empty string.
func TextWidthEllipsis(m TextMeasurer, text string, maxWidth float32) string {
	if maxWidth <= 0 {
		return ""
	}
	if m.MeasureText(text).X <= maxWidth {
		return text
	}
	for _, suffix := range []string{"..", "."} {
		if s := TruncateTextWithSuffix(m, text, maxWidth, suffix); m.MeasureText(s).X <= maxWidth {
			return s
		}
	}
	return ""
}

// MeasureWrappedText returns the size of text when wrapped to maxWidth.
func MeasureWrappedText(m TextMeasurer, text string, maxWidth float32, mode TextWrapMode) Vec2 {
	lines := WrapText(m, text, maxWidth, mode)
	if len(lines) == 0 {
		return Vec2{}
	}

	var widest float32
	for _, line := range lines {
		if w := m.MeasureText(line).X; w > widest {
			widest = w
		}
	}
	return Vec2{X: widest, Y: float32(len(lines)) * m.LineHeight()}
}

// RenderLines draws lines top to bottom, one line height apart, with the
// first baseline at (x, y).
func RenderLines(f *FontAtlas, lines []string, x, y, r, g, b float32) error {
	step := f.LineHeight()
	for i, line := range lines {
		if err := f.Render(line, x, y+float32(i)*step, r, g, b); err != nil {
			return err
		}
	}
	return nil
}
