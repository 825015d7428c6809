package driver

import "time"

// Stage is the step a document is in.
type Stage string

const (
	StageRead     Stage = "read"
	StageTokenize Stage = "tokenize"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file, or for the whole run when File is
// empty. Fraction is the share of the file consumed so far, when the size
// is known.
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Fraction float64
	Err      error
	Elapsed  time.Duration
}

type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
