package docs

// containsPathTraversal checks if a path contains path traversal sequences
func containsPathTraversal(path string) bool {
	for _, part := range splitPath(path) {
		if part == ".." {
			return true
		}
	}
	return false
}

// splitPath splits a path into its components on either separator
func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '/' && path[i] != '\\' {
			continue
		}
		if i > start {
			parts = append(parts, path[start:i])
		}
		start = i + 1
	}
	return parts
}
