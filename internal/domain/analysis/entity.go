package analysis

import "time"

// AnalysisID identifier type
type AnalysisID string

// Mode enum
type Mode string

const (
	ModePremium Mode = "premium"
	ModeFree    Mode = "free"
	ModeDemo    Mode = "demo"
)

// Status enum for the orchestrator result.
type Status string

const (
	// StatusOK: a composed report was produced (AI or rule-based).
	StatusOK Status = "ok"
	// StatusConfirmationNeeded: no usable credential; the caller must
	// re-submit with confirm_fallback=true to accept the degraded path.
	StatusConfirmationNeeded Status = "confirmation_needed"
	// StatusProviderUnsupported: the requested provider is not wired yet.
	// Returned before any credential or network use.
	StatusProviderUnsupported Status = "provider_unsupported"
)

// Analysis is a completed analysis stored for auditing and retrieval.
type Analysis struct {
	ID        AnalysisID `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Mode      string     `json:"mode"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model,omitempty"`
	RiskScore int        `json:"risk_score"`
	RiskLevel string     `json:"risk_level"`
	RiskFlags string     `json:"risk_flags,omitempty"` // comma-joined labels
	Report    string     `json:"report"`
	ReportURL string     `json:"report_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Failure records one terminal AI-path failure for ops visibility.
type Failure struct {
	ID         int64     `json:"id"`
	TenantID   string    `json:"tenant_id"`
	AnalysisID string    `json:"analysis_id"`
	Model      string    `json:"model,omitempty"`
	Class      string    `json:"class,omitempty"` // rate_limited | unavailable | fatal
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
