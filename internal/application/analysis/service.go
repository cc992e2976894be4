package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/contract-sentinel/internal/application"
	appai "github.com/bryanwahyu/contract-sentinel/internal/application/ai"
	domai "github.com/bryanwahyu/contract-sentinel/internal/domain/ai"
	domain "github.com/bryanwahyu/contract-sentinel/internal/domain/analysis"
	"github.com/bryanwahyu/contract-sentinel/internal/domain/risk"
	"github.com/bryanwahyu/contract-sentinel/internal/domain/rules"
	"github.com/bryanwahyu/contract-sentinel/internal/infra/ai/prompt"
)

// SupportedProvider is the only provider wired today. Anything else
// short-circuits before the credential is even looked at.
const SupportedProvider = "openai"

// DefaultModel heads the fallback chain when the caller names none.
const DefaultModel = "gpt-4o-mini"

// ModelInvoker port; satisfied by application/ai.Invoker.
type ModelInvoker interface {
	Invoke(ctx context.Context, apiKey string, prompt string, image []byte, requestedModel string) (appai.Result, error)
}

// Service implements the analysis use-cases. It holds no per-request
// state; Repo/Failures/Reports are optional audit collaborators and a nil
// value disables that concern.
type Service struct {
	Invoker      ModelInvoker
	ServerAPIKey string
	Repo         domain.Repository
	Failures     domain.FailureRepository
	Reports      domain.ReportStore
	Clock        application.Clock
	Log          *slog.Logger
}

// Command to analyze one document. Text arrives already extracted; Image
// is an optional opaque payload forwarded to the AI path untouched.
type Command struct {
	TenantID        string
	Text            string
	Image           []byte
	Mode            domain.Mode
	Provider        string
	Model           string
	APIKey          string
	ConfirmFallback bool
}

// Report is the composed outcome returned to the caller.
type Report struct {
	Status domain.Status   `json:"status"`
	Text   string          `json:"result,omitempty"`
	Risk   risk.Assessment `json:"risk"`
	Model  string          `json:"model,omitempty"`

	// FailureClass is set when the AI path failed and the report was
	// degraded; empty otherwise. Not part of the response body.
	FailureClass string `json:"-"`
}

// User-facing report fragments.
const (
	warnPremiumKeyMissing = "⚠️ **Warning:** Premium AI key not configured on server. \n\n"
	warnFreeKeyMissing    = "⚠️ **Warning:** No API key provided (Free Mode). Showing basic analysis. \n\n"

	errPremiumImageOnly = "⚠️ **Error:** Premium AI key missing. OCR/Image analysis requires an active AI connection. Rule-based fallback cannot read images."
	errFreeImageOnly    = "⚠️ **Error:** No API key provided. OCR/Image analysis requires an active AI connection. Rule-based fallback cannot read images."

	ocrUnavailableBusy  = " (OCR unavailable without AI)"
	ocrUnavailableError = " (OCR unavailable due to error)"

	riskHeaderFmt     = "# 🚨 Contract Risk Assessment\n**Risk Score:** %d/100 (%s)  \n**Why?** Detected: %s\n\n---\n"
	fallbackHeaderFmt = "**Risk Score:** %d/100 (%s)\n\n"
)

// Analyze resolves the operating mode and produces the final report.
// AI-side failures never escape: they always degrade into a report.
func (s *Service) Analyze(ctx context.Context, cmd Command) (Report, error) {
	text := cmd.Text
	imageOnly := len(cmd.Image) > 0 && strings.TrimSpace(text) == ""

	mode := cmd.Mode
	model := cmd.Model
	var apiKey string

	// Demo mode substitutes a canned document, then behaves as free or
	// premium depending on whether the caller brought a key.
	if mode == domain.ModeDemo {
		if strings.TrimSpace(text) == "" && len(cmd.Image) == 0 {
			text = DemoContract
			imageOnly = false
		}
		if cmd.APIKey != "" {
			mode = domain.ModeFree
		} else {
			mode = domain.ModePremium
		}
		if model == "" {
			model = DefaultModel
		}
	}

	switch mode {
	case domain.ModePremium:
		if s.ServerAPIKey == "" {
			return s.degrade(ctx, cmd, text, imageOnly, warnPremiumKeyMissing, errPremiumImageOnly)
		}
		apiKey = s.ServerAPIKey

	default: // free
		if cmd.Provider != "" && !strings.EqualFold(cmd.Provider, SupportedProvider) {
			msg := fmt.Sprintf("%s integration coming soon. Currently only OpenAI is supported.", cmd.Provider)
			return Report{Status: domain.StatusProviderUnsupported, Text: msg}, nil
		}
		if cmd.APIKey == "" {
			return s.degrade(ctx, cmd, text, imageOnly, warnFreeKeyMissing, errFreeImageOnly)
		}
		apiKey = cmd.APIKey
	}

	if model == "" {
		model = DefaultModel
	}

	return s.runAI(ctx, cmd, text, imageOnly, apiKey, model)
}

// degrade handles the missing-credential paths: ask for confirmation
// first, then either refuse (image-only) or serve the rule-based report.
func (s *Service) degrade(ctx context.Context, cmd Command, text string, imageOnly bool, warning, imageErr string) (Report, error) {
	if !cmd.ConfirmFallback {
		return Report{Status: domain.StatusConfirmationNeeded}, nil
	}
	if imageOnly {
		rep := Report{Status: domain.StatusOK, Text: imageErr, Risk: risk.Score("")}
		s.record(ctx, cmd, rep)
		return rep, nil
	}
	rep := Report{
		Status: domain.StatusOK,
		Text:   warning + rules.Analyze(text),
		Risk:   risk.Score(text),
	}
	s.record(ctx, cmd, rep)
	return rep, nil
}

// runAI drives the invoker and composes the final report around its
// outcome. The risk assessment is computed locally either way.
func (s *Service) runAI(ctx context.Context, cmd Command, text string, imageOnly bool, apiKey, model string) (Report, error) {
	promptText := text
	if imageOnly {
		promptText = prompt.ImageFallbackText
	}

	res, err := s.Invoker.Invoke(ctx, apiKey, prompt.Build(promptText), cmd.Image, model)

	var assessment risk.Assessment
	if imageOnly {
		assessment = risk.Score("")
	} else {
		assessment = risk.Score(text)
	}

	if err == nil {
		header := fmt.Sprintf(riskHeaderFmt,
			assessment.Score, assessment.Level, strings.Join(assessment.Flags, ", "))
		rep := Report{
			Status: domain.StatusOK,
			Text:   header + res.Text,
			Risk:   assessment,
			Model:  res.Model,
		}
		s.record(ctx, cmd, rep)
		return rep, nil
	}

	s.logger().Error("analysis.ai_failed", "tenant", cmd.TenantID, "error", err)
	s.recordFailure(ctx, cmd, err)

	header := fmt.Sprintf(fallbackHeaderFmt, assessment.Score, assessment.Level)

	narrative := rules.Analyze(text)
	var body string
	if domai.Classify(err) == domai.ClassRateLimited {
		if imageOnly {
			narrative = ocrUnavailableBusy
		}
		body = "⚠️ **System Busy (Rate Limit):** \n\n" + header +
			"The free AI tier is currently overloaded. Please wait 1 minute and try again.\n\n" + narrative
	} else {
		if imageOnly {
			narrative = ocrUnavailableError
		}
		body = fmt.Sprintf("AI Error: %v \n\n%sFallback Analysis:\n%s", err, header, narrative)
	}

	rep := Report{
		Status:       domain.StatusOK,
		Text:         body,
		Risk:         assessment,
		FailureClass: string(domai.Classify(err)),
	}
	s.record(ctx, cmd, rep)
	return rep, nil
}

// History lists prior analyses for a tenant from the audit trail.
func (s *Service) History(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	if s.Repo == nil {
		return []*domain.Analysis{}, nil
	}
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// record archives the composed report. Best effort only: the audit trail
// must never fail a request.
func (s *Service) record(ctx context.Context, cmd Command, rep Report) {
	if s.Repo == nil && s.Reports == nil {
		return
	}
	id := uuid.New().String()

	var reportURL string
	if s.Reports != nil {
		key := fmt.Sprintf("%s/%s.md", cmd.TenantID, id)
		url, err := s.Reports.UploadReport(ctx, key, []byte(rep.Text))
		if err != nil {
			s.logger().Warn("analysis.artifact_upload_failed", "tenant", cmd.TenantID, "error", err)
		} else {
			reportURL = url
		}
	}

	if s.Repo != nil {
		a := &domain.Analysis{
			ID:        domain.AnalysisID(id),
			TenantID:  cmd.TenantID,
			Mode:      string(cmd.Mode),
			Provider:  cmd.Provider,
			Model:     rep.Model,
			RiskScore: rep.Risk.Score,
			RiskLevel: string(rep.Risk.Level),
			RiskFlags: strings.Join(rep.Risk.Flags, ", "),
			Report:    rep.Text,
			ReportURL: reportURL,
			CreatedAt: s.now(),
		}
		if err := s.Repo.Save(ctx, a); err != nil {
			s.logger().Warn("analysis.audit_save_failed", "tenant", cmd.TenantID, "error", err)
		}
	}
}

func (s *Service) recordFailure(ctx context.Context, cmd Command, err error) {
	if s.Failures == nil {
		return
	}
	f := &domain.Failure{
		TenantID:  cmd.TenantID,
		Message:   err.Error(),
		Class:     string(domai.Classify(err)),
		CreatedAt: s.now(),
	}
	var ex *domai.ExhaustedError
	if errors.As(err, &ex) {
		f.Model = ex.Model
		f.Class = string(ex.Class)
	}
	if serr := s.Failures.Save(ctx, f); serr != nil {
		s.logger().Warn("analysis.failure_save_failed", "tenant", cmd.TenantID, "error", serr)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}
