package reports

import "errors"

var (
	// ErrMissingClient is returned when a report lacks its client reference.
	ErrMissingClient = errors.New("reports: client id is required")

	// ErrMissingContent is returned when a report has no content.
	ErrMissingContent = errors.New("reports: content is required")

	// ErrMissingDate is returned when a report has no session date.
	ErrMissingDate = errors.New("reports: date is required")

	// ErrReportNotFound is returned when a report does not exist.
	ErrReportNotFound = errors.New("reports: report not found")
)
