package domain

import "errors"

// Error kinds surfaced by the pipeline. Components wrap these together with
// the underlying cause so callers can match either with errors.Is.
var (
	// ErrStoreUnavailable is returned when the domain list file is missing or unreadable.
	ErrStoreUnavailable = errors.New("domain list store unavailable")
	// ErrStoreWrite is returned when the domain list or the output file cannot be written.
	ErrStoreWrite = errors.New("write failed")
	// ErrRefreshFailed is returned when fetching or parsing the remote list fails.
	ErrRefreshFailed = errors.New("domain list refresh failed")
	// ErrInputUnavailable is returned when the address input cannot be opened or read.
	ErrInputUnavailable = errors.New("address input unavailable")
	// ErrInvalidAddress marks a single input line without an '@' separator.
	// It is reported per line and never aborts a run.
	ErrInvalidAddress = errors.New("invalid address line")
)
