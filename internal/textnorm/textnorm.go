// Package textnorm strips HTML markup and decorative control sequences out
// of Brave Search result text, the way a language model consuming the tool
// output expects: plain, single-line, whitespace-collapsed text.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	htmlEntityRe = regexp.MustCompile(`&(#x[0-9a-fA-F]+|#[0-9]+|[a-zA-Z]+);`)
	ansiCSIRe    = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")
	ansiOSCRe    = regexp.MustCompile("\x1b\\].*?(?:\x07|\x1b\\\\)")
	ansiOtherRe  = regexp.MustCompile("\x1b[^\\[\\]]")
	controlRe    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var namedEntities = map[string]string{
	"lt":     "<",
	"gt":     ">",
	"amp":    "&",
	"quot":   "\"",
	"apos":   "'",
	"nbsp":   " ",
	"mdash":  "—",
	"ndash":  "–",
	"hellip": "…",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"middot": "·",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"euro":   "€",
}

func isValidCodepoint(cp int64) bool {
	if cp < 1 || cp > 0x10FFFF {
		return false
	}
	return cp < 0xD800 || cp > 0xDFFF
}

func decodeEntity(entity string) string {
	if strings.HasPrefix(entity, "#x") || strings.HasPrefix(entity, "#X") {
		if cp, err := strconv.ParseInt(entity[2:], 16, 64); err == nil && isValidCodepoint(cp) {
			return string(rune(cp))
		}
		return "&" + entity + ";"
	}
	if strings.HasPrefix(entity, "#") {
		if cp, err := strconv.ParseInt(entity[1:], 10, 64); err == nil && isValidCodepoint(cp) {
			return string(rune(cp))
		}
		return "&" + entity + ";"
	}
	if replacement, ok := namedEntities[entity]; ok {
		return replacement
	}
	return "&" + entity + ";"
}

func decodeEntities(text string) string {
	return htmlEntityRe.ReplaceAllStringFunc(text, func(match string) string {
		entity := match[1 : len(match)-1]
		return decodeEntity(entity)
	})
}

// StripHTMLTags removes HTML/XML tags and comments from input, scanning
// rune-by-rune so quoted attribute values containing '>' don't end a tag
// early. An unterminated "<!--" comment consumes the rest of the input.
func StripHTMLTags(input string) string {
	chars := []rune(input)
	n := len(chars)
	var out strings.Builder
	out.Grow(len(input))

	i := 0
	for i < n {
		ch := chars[i]
		if ch == '<' {
			if i+3 < n && chars[i+1] == '!' && chars[i+2] == '-' && chars[i+3] == '-' {
				j := i + 4
				found := false
				for j+2 < n {
					if chars[j] == '-' && chars[j+1] == '-' && chars[j+2] == '>' {
						i = j + 3
						found = true
						break
					}
					j++
				}
				if found {
					continue
				}
				break
			}

			var next rune
			if i+1 < n {
				next = chars[i+1]
			}
			if isASCIIAlpha(next) || next == '!' || next == '/' || next == '?' {
				i += 2
				var quote rune
				hasQuote := false
				for i < n {
					tc := chars[i]
					if hasQuote {
						if tc == quote {
							hasQuote = false
						}
						i++
						continue
					}
					if tc == '"' || tc == '\'' {
						quote = tc
						hasQuote = true
						i++
						continue
					}
					if tc == '>' {
						i++
						break
					}
					i++
				}
				continue
			}
		}

		out.WriteRune(ch)
		i++
	}

	return out.String()
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func stripControlChars(text string) string {
	noCSI := ansiCSIRe.ReplaceAllString(text, "")
	noOSC := ansiOSCRe.ReplaceAllString(noCSI, "")
	noOther := ansiOtherRe.ReplaceAllString(noOSC, "")
	return controlRe.ReplaceAllString(noOther, "")
}

// Clean normalizes raw Brave result text: strips tags (unless
// preserveDecorations is set, matching Brave's text_decorations param),
// decodes HTML entities, strips ANSI/control sequences, collapses
// whitespace, and trims the result.
func Clean(text string, preserveDecorations bool) string {
	var normalized string
	if preserveDecorations {
		normalized = decodeEntities(text)
	} else {
		normalized = decodeEntities(StripHTMLTags(text))
	}
	collapsed := whitespaceRe.ReplaceAllString(stripControlChars(normalized), " ")
	return strings.TrimSpace(collapsed)
}

// SanitizeForWarning strips ANSI/control sequences from a value before it is
// echoed back inside a warning message, and caps it to 100 runes so a
// pathological input can't blow up the response size.
func SanitizeForWarning(value string) string {
	noCSI := ansiCSIRe.ReplaceAllString(value, "")
	noOSC := ansiOSCRe.ReplaceAllString(noCSI, "")
	noOther := ansiOtherRe.ReplaceAllString(noOSC, "")
	cleaned := controlRe.ReplaceAllString(noOther, "")
	runes := []rune(cleaned)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}
