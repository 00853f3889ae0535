package driver

// Stage identifies the per-file phase a progress event refers to.
type Stage uint8

const (
	StageLoad Stage = iota
	StageCheck
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageCheck:
		return "check"
	}
	return "unknown"
}

// Event is one progress notification for a snapshot file.
type Event struct {
	Path   string
	Stage  Stage
	Status string // queued|loading|checking|ok|flagged|failed
}

// Sink receives progress events. Implementations must be safe for calls from
// multiple worker goroutines.
type Sink interface {
	Send(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct{ Ch chan<- Event }

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Send(Event) {}
