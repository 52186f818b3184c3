package template

import "regexp"

// Templates carry single-brace markers like {chief_complaint}. Generation
// never interpolates them; Placeholders only surfaces the declared names so
// the API can list what a template expects.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			names = append(names, m[1])
			seen[m[1]] = true
		}
	}
	return names
}
