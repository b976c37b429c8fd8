package path

import "slices"

const escapeChar = '\\'

// IsEscaped reports whether the byte at index is escaped, that is preceded by
// an odd number of consecutive backslashes. Index 0 is never escaped.
func IsEscaped(text string, index int) bool {
	if index > len(text) {
		index = len(text)
	}

	escaped := false

	for i := index - 1; i >= 0 && text[i] == escapeChar; i-- {
		escaped = !escaped
	}

	return escaped
}

// RemoveEscapes removes the escaping backslash in front of every escaped
// occurrence of a special character. The special character itself is kept.
// With no special characters the text is returned unchanged.
func RemoveEscapes(text string, special ...rune) string {
	if len(special) == 0 {
		return text
	}

	var remove []int

	for i, r := range text {
		if !slices.Contains(special, r) {
			continue
		}

		if IsEscaped(text, i) {
			remove = append(remove, i-1)
		}
	}

	if len(remove) == 0 {
		return text
	}

	// Right to left, so earlier positions stay valid.
	for i := len(remove) - 1; i >= 0; i-- {
		at := remove[i]
		text = text[:at] + text[at+1:]
	}

	return text
}

// RemoveEscapesIn is RemoveEscapes with the special characters given as a string.
func RemoveEscapesIn(text, specials string) string {
	return RemoveEscapes(text, []rune(specials)...)
}
