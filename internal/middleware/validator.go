package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidateMode checks the requested analysis mode
func ValidateMode(mode string) error {
	allowed := map[string]bool{
		"premium": true,
		"free":    true,
		"demo":    true,
	}
	if !allowed[strings.ToLower(mode)] {
		return fmt.Errorf("invalid mode: %s (allowed: premium, free, demo)", mode)
	}
	return nil
}

// ValidateProvider checks the provider field format. Unknown-but-valid
// provider names are allowed through; the orchestrator answers those with
// its own "coming soon" message.
func ValidateProvider(provider string) error {
	if provider == "" {
		return nil // optional, defaults to the supported provider
	}
	pattern := `^[a-zA-Z0-9_-]{1,32}$`
	matched, _ := regexp.MatchString(pattern, provider)
	if !matched {
		return fmt.Errorf("invalid provider format")
	}
	return nil
}

// ValidateModelName checks the requested model identifier
func ValidateModelName(model string) error {
	if model == "" {
		return nil // optional field
	}
	pattern := `^[a-zA-Z0-9._:-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, model)
	if !matched {
		return fmt.Errorf("invalid model name format")
	}
	return nil
}

// MaxTextBytes bounds the request body's text field. Larger documents
// should be truncated client-side; the prompt budget is far smaller anyway.
const MaxTextBytes = 1 << 20 // 1 MiB

// ValidateText bounds the raw contract text size
func ValidateText(text string) error {
	if len(text) > MaxTextBytes {
		return fmt.Errorf("text too large: %d bytes (max %d)", len(text), MaxTextBytes)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidatePage normalizes pagination page numbers
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ValidatePageSize normalizes pagination page sizes
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max limit
	}
	return size
}
