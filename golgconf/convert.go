package golgconf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConvertLegacy rewrites an old-style settings file — `KEY = value`
// assignment lines — into the YAML form read by Load. Assignment lines
// become `key: value` with the key lowercased; comments and everything
// else pass through unchanged.
func ConvertLegacy(src io.Reader, dst io.Writer) error {
	scanner := bufio.NewScanner(src)

	for scanner.Scan() {
		line := scanner.Text()

		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "#") && strings.Contains(line, "=") {
			kv := strings.SplitN(line, "=", 2)
			key := strings.ToLower(strings.TrimSpace(kv[0]))
			val := strings.TrimSpace(kv[1])
			if _, err := fmt.Fprintf(dst, "%s: %s\n", key, val); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(dst, line); err != nil {
			return err
		}
	}

	return scanner.Err()
}
