package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrEmptyDataset   = errors.New("dataset has no header row")
	ErrMissingDataset = errors.New("dataset file does not exist")
)
