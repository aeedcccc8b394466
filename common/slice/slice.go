package slice

// StringSliceContains check if a slice contains the specified string value
func StringSliceContains(sl []string, v string) bool {
	for _, vv := range sl {
		if vv == v {
			return true
		}
	}
	return false
}

// ToSlice creates a slice with all string keys from a map
func ToSlice(m map[string]struct{}) (s []string) {
	for k := range m {
		s = append(s, k)
	}

	return
}
