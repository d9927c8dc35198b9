package output

import "time"

// Clock abstracts the wall clock so registration timestamps and calendar
// dates can be fixed in tests.
type Clock interface {
	Now() time.Time
}
