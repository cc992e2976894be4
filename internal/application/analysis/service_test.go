package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appai "github.com/bryanwahyu/contract-sentinel/internal/application/ai"
	domai "github.com/bryanwahyu/contract-sentinel/internal/domain/ai"
	domain "github.com/bryanwahyu/contract-sentinel/internal/domain/analysis"
)

// stubInvoker records the call and returns a fixed outcome.
type stubInvoker struct {
	calls     int
	apiKey    string
	prompt    string
	image     []byte
	requested string

	result appai.Result
	err    error
}

func (s *stubInvoker) Invoke(_ context.Context, apiKey, prompt string, image []byte, requestedModel string) (appai.Result, error) {
	s.calls++
	s.apiKey = apiKey
	s.prompt = prompt
	s.image = image
	s.requested = requestedModel
	return s.result, s.err
}

type memRepo struct {
	saved []*domain.Analysis
}

func (m *memRepo) Save(_ context.Context, a *domain.Analysis) error {
	m.saved = append(m.saved, a)
	return nil
}

func (m *memRepo) Paginate(_ context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	return m.saved, nil
}

type memFailures struct {
	saved []*domain.Failure
}

func (m *memFailures) Save(_ context.Context, f *domain.Failure) error {
	m.saved = append(m.saved, f)
	return nil
}

func (m *memFailures) ListByAnalysis(_ context.Context, tenant, analysisID string, limit int) ([]*domain.Failure, error) {
	return m.saved, nil
}

const contractText = "The Client shall indemnify the Provider. Disputes go to arbitration with 30 days notice."

func TestAnalyze_FreeNoKeyNeedsConfirmation(t *testing.T) {
	inv := &stubInvoker{}
	svc := &Service{Invoker: inv}

	rep, err := svc.Analyze(context.Background(), Command{
		Text: contractText,
		Mode: domain.ModeFree,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmationNeeded, rep.Status)
	assert.Zero(t, inv.calls, "no network call before confirmation")
}

func TestAnalyze_FreeNoKeyConfirmedFallsBack(t *testing.T) {
	inv := &stubInvoker{}
	svc := &Service{Invoker: inv}

	rep, err := svc.Analyze(context.Background(), Command{
		Text:            contractText,
		Mode:            domain.ModeFree,
		ConfirmFallback: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, rep.Status)
	assert.True(t, strings.HasPrefix(rep.Text, "⚠️ **Warning:** No API key provided (Free Mode)."), rep.Text)
	assert.Contains(t, rep.Text, "Document Overview (Advanced Rule-Based Analysis)")
	assert.Contains(t, rep.Text, "Key Obligations")
	assert.Zero(t, inv.calls)

	// risk still computed for collaborators
	assert.Equal(t, 40, rep.Risk.Score)
	assert.Equal(t, []string{"Indemnify", "Arbitration"}, rep.Risk.Flags)
}

func TestAnalyze_PremiumNoServerKeySymmetric(t *testing.T) {
	inv := &stubInvoker{}
	svc := &Service{Invoker: inv}

	rep, err := svc.Analyze(context.Background(), Command{
		Text: contractText,
		Mode: domain.ModePremium,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmationNeeded, rep.Status)

	rep, err = svc.Analyze(context.Background(), Command{
		Text:            contractText,
		Mode:            domain.ModePremium,
		ConfirmFallback: true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rep.Text, "⚠️ **Warning:** Premium AI key not configured on server."), rep.Text)
	assert.Zero(t, inv.calls)
}

func TestAnalyze_UnsupportedProviderShortCircuits(t *testing.T) {
	inv := &stubInvoker{}
	svc := &Service{Invoker: inv}

	// no credential at all: the provider gate fires before the key check
	rep, err := svc.Analyze(context.Background(), Command{
		Text:     contractText,
		Mode:     domain.ModeFree,
		Provider: "gemini",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProviderUnsupported, rep.Status)
	assert.Contains(t, rep.Text, "gemini integration coming soon")
	assert.Zero(t, inv.calls)
}

func TestAnalyze_AISuccessPrependsRiskHeader(t *testing.T) {
	inv := &stubInvoker{result: appai.Result{Text: "AI NARRATIVE", Model: "gpt-4o-mini"}}
	repo := &memRepo{}
	svc := &Service{Invoker: inv, Repo: repo}

	rep, err := svc.Analyze(context.Background(), Command{
		TenantID: "acme",
		Text:     contractText,
		Mode:     domain.ModeFree,
		APIKey:   "user-key",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, rep.Status)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, "user-key", inv.apiKey)
	assert.Equal(t, DefaultModel, inv.requested)

	assert.True(t, strings.HasPrefix(rep.Text, "# 🚨 Contract Risk Assessment"), rep.Text)
	assert.Contains(t, rep.Text, "**Risk Score:** 40/100 (Medium)")
	assert.Contains(t, rep.Text, "Detected: Indemnify, Arbitration")
	assert.True(t, strings.HasSuffix(rep.Text, "AI NARRATIVE"))
	assert.Equal(t, "gpt-4o-mini", rep.Model)

	// audit trail
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "acme", repo.saved[0].TenantID)
	assert.Equal(t, 40, repo.saved[0].RiskScore)
	assert.Equal(t, "Indemnify, Arbitration", repo.saved[0].RiskFlags)
}

func TestAnalyze_PremiumUsesServerKey(t *testing.T) {
	inv := &stubInvoker{result: appai.Result{Text: "ok", Model: "gpt-4o-mini"}}
	svc := &Service{Invoker: inv, ServerAPIKey: "server-key"}

	_, err := svc.Analyze(context.Background(), Command{
		Text: contractText,
		Mode: domain.ModePremium,
	})
	require.NoError(t, err)
	assert.Equal(t, "server-key", inv.apiKey)
}

func TestAnalyze_RateLimitedFailureShowsBusyReport(t *testing.T) {
	inv := &stubInvoker{err: &domai.ExhaustedError{
		Model: "gpt-3.5-turbo",
		Class: domai.ClassRateLimited,
		Err:   domai.ErrRateLimited,
	}}
	failures := &memFailures{}
	svc := &Service{Invoker: inv, ServerAPIKey: "k", Failures: failures}

	rep, err := svc.Analyze(context.Background(), Command{
		TenantID: "acme",
		Text:     contractText,
		Mode:     domain.ModePremium,
	})
	require.NoError(t, err, "AI failures never escape the orchestrator")
	assert.Equal(t, domain.StatusOK, rep.Status)
	assert.Contains(t, rep.Text, "**System Busy (Rate Limit):**")
	assert.Contains(t, rep.Text, "**Risk Score:** 40/100 (Medium)")
	assert.Contains(t, rep.Text, "Document Overview (Advanced Rule-Based Analysis)")
	assert.Equal(t, string(domai.ClassRateLimited), rep.FailureClass)

	require.Len(t, failures.saved, 1)
	assert.Equal(t, "gpt-3.5-turbo", failures.saved[0].Model)
	assert.Equal(t, string(domai.ClassRateLimited), failures.saved[0].Class)
}

func TestAnalyze_GenericFailureShowsAIError(t *testing.T) {
	inv := &stubInvoker{err: &domai.ExhaustedError{
		Model: "gpt-4o-mini",
		Class: domai.ClassFatal,
		Err:   assert.AnError,
	}}
	svc := &Service{Invoker: inv, ServerAPIKey: "k"}

	rep, err := svc.Analyze(context.Background(), Command{
		Text: contractText,
		Mode: domain.ModePremium,
	})
	require.NoError(t, err)
	assert.Contains(t, rep.Text, "AI Error:")
	assert.Contains(t, rep.Text, "Fallback Analysis:")
	assert.Contains(t, rep.Text, "Document Overview (Advanced Rule-Based Analysis)")
}

func TestAnalyze_ImageOnlyMissingKey(t *testing.T) {
	inv := &stubInvoker{}
	svc := &Service{Invoker: inv}

	rep, err := svc.Analyze(context.Background(), Command{
		Image:           []byte{1, 2, 3},
		Mode:            domain.ModePremium,
		ConfirmFallback: true,
	})
	require.NoError(t, err)
	assert.Contains(t, rep.Text, "Rule-based fallback cannot read images")
	assert.Zero(t, inv.calls)
}

func TestAnalyze_ImageOnlyAIFailureShowsOCRPlaceholder(t *testing.T) {
	inv := &stubInvoker{err: &domai.ExhaustedError{
		Model: "gpt-4o-mini",
		Class: domai.ClassUnavailable,
		Err:   domai.ErrUnavailable,
	}}
	svc := &Service{Invoker: inv, ServerAPIKey: "k"}

	rep, err := svc.Analyze(context.Background(), Command{
		Image: []byte{1, 2, 3},
		Mode:  domain.ModePremium,
	})
	require.NoError(t, err)
	assert.Contains(t, rep.Text, "(OCR unavailable due to error)")
	assert.NotContains(t, rep.Text, "Document Overview")
	assert.Equal(t, 0, rep.Risk.Score)
}

func TestAnalyze_ImageOnlyUsesImagePrompt(t *testing.T) {
	inv := &stubInvoker{result: appai.Result{Text: "vision result", Model: "gpt-4o-mini"}}
	svc := &Service{Invoker: inv, ServerAPIKey: "k"}

	img := []byte{9, 9}
	_, err := svc.Analyze(context.Background(), Command{
		Image: img,
		Mode:  domain.ModePremium,
	})
	require.NoError(t, err)
	assert.Contains(t, inv.prompt, "Analyze this document image.")
	assert.Equal(t, img, inv.image)
}

func TestAnalyze_DemoModeSubstitutesDocument(t *testing.T) {
	inv := &stubInvoker{result: appai.Result{Text: "demo narrative", Model: "gpt-4o-mini"}}
	svc := &Service{Invoker: inv, ServerAPIKey: "server-key"}

	rep, err := svc.Analyze(context.Background(), Command{
		Mode: domain.ModeDemo,
	})
	require.NoError(t, err)
	// no caller key -> behaves as premium with the server credential
	assert.Equal(t, "server-key", inv.apiKey)
	assert.Equal(t, DefaultModel, inv.requested)
	assert.Contains(t, inv.prompt, "SERVICE AGREEMENT")

	// the canned contract is deliberately risky
	assert.Equal(t, domain.StatusOK, rep.Status)
	assert.Greater(t, rep.Risk.Score, 40)
}

func TestAnalyze_DemoModeWithCallerKeyBehavesAsFree(t *testing.T) {
	inv := &stubInvoker{result: appai.Result{Text: "demo narrative", Model: "gpt-4o-mini"}}
	svc := &Service{Invoker: inv}

	_, err := svc.Analyze(context.Background(), Command{
		Mode:   domain.ModeDemo,
		APIKey: "caller-key",
	})
	require.NoError(t, err)
	assert.Equal(t, "caller-key", inv.apiKey)
}

func TestHistory_NilRepo(t *testing.T) {
	svc := &Service{}
	list, err := svc.History(context.Background(), "acme", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
}
