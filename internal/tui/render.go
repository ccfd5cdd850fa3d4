package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/msto63/cmdscript/foundation/script/interp"
	"github.com/msto63/cmdscript/foundation/utils/mapx"
	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

// MaxValueWidth limits rendered values in event lines
const MaxValueWidth = 200

// FormatValue renders a script value. Maps are printed with sorted keys,
// strings are quoted and nil shows as "-".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return "'" + val + "'"
	case map[string]any:
		parts := make([]string, 0, len(val))
		for _, k := range mapx.SortedKeys(val) {
			parts = append(parts, k+": "+FormatValue(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprint(val)
	}
}

// FormatEvent renders an event without styling
func FormatEvent(ev interp.Event) string {
	label := "#-"
	if ev.Index >= 0 {
		label = fmt.Sprintf("#%d", ev.Index+1)
	}
	if !ev.OK {
		return fmt.Sprintf("%s %s %s", label, ev.Code, ev.Message)
	}
	return fmt.Sprintf("%s %s %s", label, ev.Code, stringx.Truncate(FormatValue(ev.Value()), MaxValueWidth, "..."))
}

// RenderEvent renders an event for a terminal
func RenderEvent(ev interp.Event) string {
	line := FormatEvent(ev)
	if !ev.OK {
		return ErrorMessageStyle.Render(line)
	}
	return ValueStyle.Render(line)
}

// RenderSummary renders the closing line of a run
func RenderSummary(s interp.Summary) string {
	line := fmt.Sprintf("%d executed, %d failed in %s", s.Executed, s.Failed, s.Duration.Round(time.Microsecond))
	if s.OK() {
		return StatusOKStyle.Render("ok") + " " + HelpStyle.Render(line)
	}
	return StatusErrorStyle.Render("failed") + " " + HelpStyle.Render(line)
}
