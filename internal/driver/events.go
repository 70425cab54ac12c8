package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	}
	return "unknown"
}

// Status of a file within its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event reports progress of one file.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
}

func (o *Options) emit(ev Event) {
	if o.Events != nil {
		o.Events <- ev
	}
}
