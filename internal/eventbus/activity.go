package eventbus

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ActivityEntry is one recorded event
type ActivityEntry struct {
	At    time.Time
	Event DomainEvent
}

// Activity keeps the most recent events in memory for the activity log view
type Activity struct {
	mu      sync.Mutex
	entries []ActivityEntry
	limit   int
	now     func() time.Time
}

// NewActivity creates a recorder holding at most limit entries
func NewActivity(limit int) *Activity {
	if limit <= 0 {
		limit = 500
	}
	return &Activity{limit: limit, now: time.Now}
}

// Attach subscribes the recorder to every event type; the returned func detaches it
func (a *Activity) Attach(b EventBus) func() {
	unsubs := make([]func(), 0, len(AllEventTypes))
	for _, t := range AllEventTypes {
		unsubs = append(unsubs, b.Subscribe(t, a.Record))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Record appends an event, evicting the oldest past the limit
func (a *Activity) Record(e DomainEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, ActivityEntry{At: a.now(), Event: e})
	if over := len(a.entries) - a.limit; over > 0 {
		a.entries = append([]ActivityEntry(nil), a.entries[over:]...)
	}
}

// Entries returns a copy of the recorded entries, oldest first
func (a *Activity) Entries() []ActivityEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ActivityEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Render formats the log for the pager, most recent first
func (a *Activity) Render() string {
	entries := a.Entries()
	var b strings.Builder
	b.WriteString("pixgrip activity\n\n")
	if len(entries) == 0 {
		b.WriteString("Nothing yet. Press / to search.\n")
		return b.String()
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "[%s] %s\n", e.At.Format("15:04:05"), Describe(e.Event))
	}
	return b.String()
}

// Describe returns a one-line summary of an event
func Describe(e DomainEvent) string {
	switch ev := e.(type) {
	case SearchSubmittedEvent:
		return fmt.Sprintf("search %q", ev.Query)
	case PageRequestedEvent:
		return fmt.Sprintf("request page %d of %q", ev.Page, ev.Query)
	case PageLoadedEvent:
		more := "last page"
		if ev.HasMore {
			more = "more available"
		}
		return fmt.Sprintf("page %d of %q: %d images of %d (%s)", ev.Page, ev.Query, ev.Items, ev.TotalHits, more)
	case SearchFailedEvent:
		return fmt.Sprintf("page %d of %q failed: %v", ev.Page, ev.Query, ev.Err)
	case ImageOpenedEvent:
		return "open " + ev.URL
	case ModalClosedEvent:
		return "close " + ev.URL
	default:
		return string(e.Type())
	}
}
