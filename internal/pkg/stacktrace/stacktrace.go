package stacktrace

import "strings"

// InternalPaths extracts the frames of a raw debug.Stack dump that point into
// this repository's internal packages, shortened to "internal/...:line".
//
// Used by panic recovery so logs stay readable instead of carrying the whole
// runtime stack.
func InternalPaths(stack []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		frame := line[idx+1:]
		if sp := strings.IndexByte(frame, ' '); sp != -1 {
			frame = frame[:sp]
		}
		paths = append(paths, frame)
	}

	return paths
}
