package golg

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wkozlowski/golg/internal/golgdebug"
)

// truncationMarker replaces the final character of a truncated message
// line when marking is enabled.
const truncationMarker = `\`

// padColumn left-justifies s in a column of display width w, truncating
// when s is wider.
func padColumn(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, ""), w)
}

// formatLine renders one trace record: the enabled fixed columns followed
// by the message, wrapped or truncated to the configured width.
// Continuation lines are left-padded so the message text column-aligns
// under the first line. The result always ends with exactly one line
// break per physical message line.
//
// formatLine never fails. Malformed configurations (negative widths, and
// so on) are rejected by the loader, not tolerated here.
func formatLine(cfg Config, site CallSite, qualifier, message string, now time.Time) string {
	var sb strings.Builder

	if cfg.TraceTime {
		sb.WriteString(now.Format(cfg.TimeFormat))
		sb.WriteString("  ")
	}

	if cfg.TraceFilename {
		sb.WriteString(padColumn(site.File, cfg.FilenameColumnWidth))
		sb.WriteString("  ")
	}

	if cfg.TraceLineno {
		fmt.Fprintf(&sb, "%0*d: ", cfg.LinenoWidth, site.Line)
	}

	if cfg.TraceFunction {
		name := site.Function
		if qualifier != "" {
			name = qualifier + "." + name
		}
		sb.WriteString(padColumn(name, cfg.FunctionColumnWidth))
		sb.WriteString("  ")
	}

	if !cfg.TraceMessage {
		// No message column, but a record is still one block.
		sb.WriteString("\n")
		return sb.String()
	}

	// The width of everything before the message column, used to align
	// continuation lines.
	padding := strings.Repeat(" ", runewidth.StringWidth(sb.String()))

	for idx, line := range splitMessageLines(message) {
		if idx != 0 {
			sb.WriteString(padding)
		}

		switch {
		case cfg.MessageWidth == 0:
			// Unlimited width: the line is emitted verbatim.
			sb.WriteString(line)

		case cfg.MessageWrap:
			wrapped := wrapLine(line, cfg.MessageWidth)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			sb.WriteString(wrapped[0])
			for _, sub := range wrapped[1:] {
				golgdebug.Engine.WrappedLines.Add(1)
				sb.WriteString("\n")
				sb.WriteString(padding)
				sb.WriteString(sub)
			}

		default:
			wrapped := wrapLine(line, cfg.MessageWidth)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			if len(wrapped) > 1 {
				golgdebug.Engine.TruncatedLines.Add(1)
			}
			if cfg.MessageMarkTruncation && len(wrapped) > 1 {
				if cfg.MessageWidth > 1 {
					// Rewrap to one character narrower, to make room
					// for the marker.
					kept := wrapLine(wrapped[0], cfg.MessageWidth-1)
					sb.WriteString(padColumn(kept[0], cfg.MessageWidth-1))
					sb.WriteString(truncationMarker)
				} else {
					sb.WriteString(truncationMarker)
				}
			} else {
				sb.WriteString(wrapped[0])
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
