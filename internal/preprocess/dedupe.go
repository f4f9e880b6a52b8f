package preprocess

import "strings"

// DeduplicateLines drops blank lines and every line whose trimmed,
// lower-cased form was already seen. Kept lines are returned verbatim, in
// their original order.
func DeduplicateLines(text string) string {
	seen := make(map[string]bool)
	var unique []string
	for _, line := range strings.Split(text, "\n") {
		key := strings.ToLower(strings.TrimSpace(line))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, line)
	}
	return strings.Join(unique, "\n")
}
