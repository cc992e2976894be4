package mysql

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

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO contract_analyses
  (id, tenant_id, mode, provider, model, risk_score, risk_level, risk_flags, report, report_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  tenant_id=VALUES(tenant_id), mode=VALUES(mode), provider=VALUES(provider), model=VALUES(model),
  risk_score=VALUES(risk_score), risk_level=VALUES(risk_level), risk_flags=VALUES(risk_flags),
  report=VALUES(report), report_url=VALUES(report_url);
`
	// Ensure non-nullable fields have safe defaults
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
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
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
