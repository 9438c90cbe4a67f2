package search

import "fmt"

// Event is one entry of the trial's observational side channel.
type Event struct {
	Iter    int            `json:"iter"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (t *Trial) emit(ev Event) {
	if t.OnEvent != nil {
		t.OnEvent(ev)
	}
}

// logf records a human-readable message and mirrors it as a LogLine event.
func (t *Trial) logf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	t.messages = append(t.messages, fmt.Sprintf("Iteration %d) %s", t.iteration, text))
	t.emit(Event{Iter: t.iteration, Type: "LogLine", Payload: map[string]any{"text": text}})
}

// Messages returns the append-only trial log.
func (t *Trial) Messages() []string {
	return t.messages
}
