package ingestion

import "errors"

var (
	ErrEmptyBatch    = errors.New("no valid employees to submit")
	ErrStoreUpload   = errors.New("failed to store parsed upload")
	ErrSubmitBatch   = errors.New("failed to submit employee batch")
	ErrLoadUpload    = errors.New("failed to load parsed upload")
	ErrOnboardSingle = errors.New("failed to onboard employee")
)
