package input

import "context"

// ColumnMapping binds the importer's logical fields to the source keys
// discovered in the uploaded data. Name is required; the others are optional.
type ColumnMapping struct {
	Name           string
	Phone          string
	Location       string
	FirstTimeGuest string
}

// ImportRequest is one batch of externally supplied rows to replay through
// door-registration logic. Exactly one of EventID / NewEvent selects the
// target event.
type ImportRequest struct {
	Rows     []map[string]any
	Mapping  ColumnMapping
	EventID  string
	NewEvent *NewEvent
	Locale   string
}

// ImportResult aggregates per-row outcomes; rows commit independently and
// failed rows are reported as strings, never as a batch abort.
type ImportResult struct {
	EventID          string
	CreatedOrUpdated int
	Registered       int
	Errors           []string
}

type ImportUseCase interface {
	ImportRows(ctx context.Context, userID string, req ImportRequest) (*ImportResult, error)
}
