package session

import "errors"

var (
	// ErrImportFormat is returned when an imported CSV row has more than the
	// two supported columns. The whole import is aborted; the store is left
	// untouched.
	ErrImportFormat = errors.New("incorrect number of columns")
)

// NoSelection is the sentinel index meaning no card or set is selected.
const NoSelection = -1
