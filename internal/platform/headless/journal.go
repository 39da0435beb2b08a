package headless

import (
	"fmt"
	"sync"
)

// Journal records, in order, every call the presentation stack made into
// a headless backend, plus any ordering violations it noticed.
type Journal struct {
	mu         sync.Mutex
	entries    []string
	violations []string
}

func (j *Journal) record(entry string) {
	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()
}

func (j *Journal) violate(format string, args ...any) {
	j.mu.Lock()
	j.violations = append(j.violations, fmt.Sprintf(format, args...))
	j.mu.Unlock()
}

func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Releases returns only the destroy/quit entries.
func (j *Journal) Releases() []string {
	var out []string
	for _, e := range j.Entries() {
		switch e {
		case EntryDestroyImage, EntryDestroyRenderer, EntryDestroyWindow, EntryQuit:
			out = append(out, e)
		}
	}
	return out
}

func (j *Journal) Count(entry string) int {
	n := 0
	for _, e := range j.Entries() {
		if e == entry {
			n++
		}
	}
	return n
}

func (j *Journal) Violations() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.violations))
	copy(out, j.violations)
	return out
}

const (
	EntryInit            = "init"
	EntryCreateWindow    = "create window"
	EntryCreateRenderer  = "create renderer"
	EntryCreateImage     = "create image"
	EntryUpdate          = "update"
	EntryCopy            = "copy"
	EntryPresent         = "present"
	EntryDestroyImage    = "destroy image"
	EntryDestroyRenderer = "destroy renderer"
	EntryDestroyWindow   = "destroy window"
	EntryQuit            = "quit"
)
