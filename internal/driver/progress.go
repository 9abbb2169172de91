package driver

import "time"

// Stage names a pipeline phase. A pipeline runs up to and including its Stage.
type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageSema  Stage = "sema"
	StageLower Stage = "lower"
)

// ParseStage accepts the stage names plus the aliases tokenize, syntax and all.
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "lex", "tokenize":
		return StageLex, true
	case "parse", "syntax":
		return StageParse, true
	case "sema":
		return StageSema, true
	case "", "lower", "all":
		return StageLower, true
	default:
		return "", false
	}
}

func (s Stage) rank() int {
	switch s {
	case StageLex:
		return 1
	case StageParse:
		return 2
	case StageSema:
		return 3
	default:
		return 4
	}
}

// Reaches reports whether a pipeline stopping at s runs other.
func (s Stage) Reaches(other Stage) bool { return other.rank() <= s.rank() }

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Directory mode reports from every
// worker, so implementations must be safe for concurrent use.
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
