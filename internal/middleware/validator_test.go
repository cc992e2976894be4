package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMode(t *testing.T) {
	assert.NoError(t, ValidateMode("premium"))
	assert.NoError(t, ValidateMode("FREE"))
	assert.NoError(t, ValidateMode("demo"))
	assert.Error(t, ValidateMode("turbo"))
	assert.Error(t, ValidateMode(""))
}

func TestValidateProvider(t *testing.T) {
	assert.NoError(t, ValidateProvider(""))
	assert.NoError(t, ValidateProvider("openai"))
	assert.NoError(t, ValidateProvider("gemini"))
	assert.Error(t, ValidateProvider("open ai"))
	assert.Error(t, ValidateProvider(strings.Repeat("x", 33)))
}

func TestValidateModelName(t *testing.T) {
	assert.NoError(t, ValidateModelName(""))
	assert.NoError(t, ValidateModelName("gpt-4o-mini"))
	assert.NoError(t, ValidateModelName("gpt-3.5-turbo"))
	assert.Error(t, ValidateModelName("model name with spaces"))
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("short"))
	assert.Error(t, ValidateText(strings.Repeat("a", MaxTextBytes+1)))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
	assert.Equal(t, "a\tb\nc", SanitizeString("a\tb\nc\x07"))
}

func TestValidateTenantID(t *testing.T) {
	assert.NoError(t, ValidateTenantID("acme-corp_01"))
	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID("bad tenant!"))
	assert.Error(t, ValidateTenantID(strings.Repeat("a", 65)))
}

func TestValidatePagination(t *testing.T) {
	assert.Equal(t, 1, ValidatePage(0))
	assert.Equal(t, 3, ValidatePage(3))
	assert.Equal(t, 20, ValidatePageSize(0))
	assert.Equal(t, 100, ValidatePageSize(500))
	assert.Equal(t, 50, ValidatePageSize(50))
}
