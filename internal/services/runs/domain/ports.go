package domain

import "context"

// WriterPort records a finished run
type WriterPort interface {
	Record(ctx context.Context, r Run) error
}

// ReaderPort lists recent runs, newest first
type ReaderPort interface {
	Recent(ctx context.Context, in ListInput) ([]Run, error)
}

// Ports is the runs module port set
type Ports struct {
	Writer WriterPort
	Reader ReaderPort
}
