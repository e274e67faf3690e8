package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/roach88/taskcli/internal/tracker"
)

// TaskListing renders summaries as text, one task per line, with times
// relative to Now.
type TaskListing struct {
	Tasks []tracker.Summary
	Now   time.Time
}

func (l TaskListing) String() string {
	if len(l.Tasks) == 0 {
		return "No tasks found"
	}
	lines := make([]string, 0, len(l.Tasks))
	for _, s := range l.Tasks {
		lines = append(lines, renderSummary(s, l.Now))
	}
	return strings.Join(lines, "\n")
}

// renderSummary formats one task as
//
//	#2 [IN_PROGRESS] Walk dog (created 5 minutes ago, updated 1 minute ago)
func renderSummary(s tracker.Summary, now time.Time) string {
	times := "created " + relative(s.CreatedAt, now)
	if s.UpdatedAt != nil {
		times += ", updated " + relative(*s.UpdatedAt, now)
	}
	return fmt.Sprintf("#%d [%s] %s (%s)", s.ID, s.Status, s.Description, times)
}

func relative(then, now time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}
