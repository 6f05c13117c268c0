package compliance

import "context"

// ComplianceService produces working-time compliance reports. Computation
// is pure over an immutable snapshot of interval data, so concurrent report
// requests never share mutable state and are safe to abandon mid-flight.
type ComplianceService interface {
	// ReportForUser computes the report for one user. A nil period defaults
	// to the current calendar month.
	ReportForUser(ctx context.Context, userID string, period *Period) (ComplianceReport, error)

	// ReportForRoster computes reports for every active user. A user whose
	// data fetch fails is reported with an error marker; the batch
	// continues.
	ReportForRoster(ctx context.Context, period *Period) ([]UserReport, error)

	// SummaryForUser computes descriptive working-time statistics.
	SummaryForUser(ctx context.Context, userID string, period *Period) (WorkSummary, error)
}
