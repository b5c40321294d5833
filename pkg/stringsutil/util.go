package stringsutil

import "strings"

// TrimNonEmpty trims every element and drops the ones left empty.
func TrimNonEmpty(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}
