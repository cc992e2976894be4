package analysis

import "context"

// Repository port for the analysis audit trail.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Analysis, error)
}

// FailureRepository port for AI-path failure records.
type FailureRepository interface {
	Save(ctx context.Context, f *Failure) error
	ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*Failure, error)
}

// ReportStore port for archiving composed report artifacts.
type ReportStore interface {
	UploadReport(ctx context.Context, key string, body []byte) (string, error)
}
