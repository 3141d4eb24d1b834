package clitable

import "regexp"

var completionRe = regexp.MustCompile(`(\w*)\[\[(\w*)\]\]`)

// expandCompletion rewrites every `word[[suffix]]` occurrence in s into a
// right-nested optional group: `sh[[ow]]` becomes `sh(o(w)?)?` (§4.6). It is
// applied by preParse on the Command column, never on the compiled pattern
// directly.
func expandCompletion(s string) string {
	return completionRe.ReplaceAllStringFunc(s, func(match string) string {
		sub := completionRe.FindStringSubmatch(match)
		return sub[1] + wrapOptional(sub[2])
	})
}

func wrapOptional(s string) string {
	if s == "" {
		return ""
	}
	return "(" + string(s[0]) + wrapOptional(s[1:]) + ")?"
}
