package pipeline

import "cba/internal/archiver"

type Kind int

const (
	// KindStarting announces folder Index of Total; Text is "Index/Total Folder".
	KindStarting Kind = iota
	// KindFraction carries the share of folders finished so far.
	KindFraction
	KindMessage
	KindDone
	// KindAborted ends a run that stopped on Err.
	KindAborted
)

func (k Kind) String() string {
	switch k {
	case KindStarting:
		return "starting"
	case KindFraction:
		return "fraction"
	case KindMessage:
		return "message"
	case KindDone:
		return "done"
	case KindAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Event is one unit of feedback from a run. Only the fields relevant to Kind are set.
type Event struct {
	Kind     Kind
	Index    int
	Total    int
	Folder   string
	Fraction float64
	Text     string
	Err      error
}

// Request is one batch of paths to archive.
type Request struct {
	Paths []string
	Type  archiver.Container
	// Emit receives every event of the run, from the goroutine doing the work.
	Emit func(Event)
}

// Summary counts what a run did.
type Summary struct {
	Folders  int
	Archived int
	Skipped  int
	Pages    int
	Bytes    int64
}
