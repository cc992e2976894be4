package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/contract-sentinel/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO contract_analyses
  (id, tenant_id, mode, provider, model, risk_score, risk_level, risk_flags, report, report_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  tenant_id=EXCLUDED.tenant_id,
  mode=EXCLUDED.mode,
  provider=EXCLUDED.provider,
  model=EXCLUDED.model,
  risk_score=EXCLUDED.risk_score,
  risk_level=EXCLUDED.risk_level,
  risk_flags=EXCLUDED.risk_flags,
  report=EXCLUDED.report,
  report_url=EXCLUDED.report_url;
`
	tenant := stringOrDash(a.TenantID)
	mode := stringOrDash(a.Mode)
	report := a.Report
	if strings.TrimSpace(report) == "" {
		report = "-"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		a.ID, tenant, mode, a.Provider, a.Model,
		a.RiskScore, a.RiskLevel, a.RiskFlags, report, a.ReportURL, createdAt)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, mode, provider, model, risk_score, risk_level, risk_flags, report, report_url, created_at
FROM contract_analyses
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var created time.Time
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Mode, &a.Provider, &a.Model,
			&a.RiskScore, &a.RiskLevel, &a.RiskFlags, &a.Report, &a.ReportURL, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = created
		out = append(out, &a)
	}
	return out, rows.Err()
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
