package golg

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// wrapLine splits line into sub-lines of display width at most width.
// Whitespace runs are preserved, except at a wrap boundary, where the
// run between two words is replaced by the line break itself. Leading
// whitespace of the original line stays on the first sub-line; a
// sub-line never ends in whitespace. A word wider than the remaining
// room on a sub-line is hard-broken. The result is empty when the line
// contains no words; callers substitute a single empty sub-line where
// one is required.
//
// width must be positive.
func wrapLine(line string, width int) []string {
	chunks := splitChunks(line)

	var out []string
	for len(chunks) > 0 {
		// Whitespace at a wrap boundary is replaced by the break.
		// Leading whitespace of the original line is message content
		// and stays.
		if len(out) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
			if len(chunks) == 0 {
				break
			}
		}

		var (
			cur  []string
			curw int
		)

		for len(chunks) > 0 {
			w := runewidth.StringWidth(chunks[0])
			if curw+w > width {
				break
			}
			cur = append(cur, chunks[0])
			curw += w
			chunks = chunks[1:]
		}

		// A chunk wider than the whole sub-line is hard-broken,
		// filling whatever room the current sub-line has left.
		if len(chunks) > 0 && runewidth.StringWidth(chunks[0]) > width {
			head := runewidth.Truncate(chunks[0], width-curw, "")
			if head == "" && len(cur) == 0 {
				// A single rune wider than the whole line still has
				// to go somewhere.
				rs := []rune(chunks[0])
				head = string(rs[0])
			}
			if head != "" {
				cur = append(cur, head)
				chunks[0] = chunks[0][len(head):]
			}
		}

		// A sub-line never ends in whitespace.
		for len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}

		if len(cur) > 0 {
			out = append(out, strings.Join(cur, ""))
		}
	}

	return out
}

// splitChunks cuts line into maximal runs of whitespace and
// non-whitespace, preserving every byte.
func splitChunks(line string) []string {
	var (
		chunks []string
		start  int
		blank  bool
	)

	for i, r := range line {
		b := unicode.IsSpace(r)
		if i == 0 {
			blank = b
			continue
		}
		if b != blank {
			chunks = append(chunks, line[start:i])
			start, blank = i, b
		}
	}

	if line != "" {
		chunks = append(chunks, line[start:])
	}

	return chunks
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// splitMessageLines splits a message on explicit line breaks, so each
// resulting line can be wrapped independently. Unlike strings.Split, a
// trailing line break does not produce a trailing empty line, and an
// empty message produces a single empty line.
func splitMessageLines(message string) []string {
	if message == "" {
		return []string{""}
	}

	message = strings.ReplaceAll(message, "\r\n", "\n")

	lines := strings.Split(message, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
