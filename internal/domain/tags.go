package domain

import "unicode"

// isTagRune reports whether r may appear in a hashtag body.
// The class is letters of any script, numbers, combining marks, and
// underscore, so tags embedded in CJK or Cyrillic text segment correctly
// without trailing whitespace.
func isTagRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// ExtractTags scans text for hashtags and returns the distinct tag bodies
// (leading '#' stripped) in order of first appearance. A tag is '#'
// followed by one or more tag runes and ends at the first rune outside
// that class, so "#a#b" yields both "a" and "b" and a bare '#' yields
// nothing. The result is never nil.
func ExtractTags(text string) []string {
	tags := []string{}
	seen := make(map[string]struct{})

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(runes) && isTagRune(runes[j]) {
			j++
		}
		if j == i+1 {
			// Bare '#' with no valid body.
			continue
		}
		tag := string(runes[i+1 : j])
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
		i = j - 1
	}

	return tags
}

// HasTag reports whether tags contains tag.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
