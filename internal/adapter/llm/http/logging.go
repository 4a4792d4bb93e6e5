package http

import (
	"regexp"
)

// MaxLoggedResponseLength caps how much response body appears in logs.
const MaxLoggedResponseLength = 200

// TruncateForLogging shortens a string for log output.
func TruncateForLogging(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxLoggedResponseLength
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "...(truncated)"
}

// SafeLogResponse prepares a response body for logging by truncating it.
func SafeLogResponse(body string) string {
	return TruncateForLogging(body, MaxLoggedResponseLength)
}

var urlSecretPattern = regexp.MustCompile(`(?i)([?&](?:key|apikey|api_key|token|access_token)=)[^&\s"]+`)

// RedactURLSecrets removes credential query parameters from a string
// before it reaches logs. Gemini passes the API key as ?key=, which
// otherwise leaks through error messages containing the request URL.
func RedactURLSecrets(s string) string {
	return urlSecretPattern.ReplaceAllString(s, "${1}[REDACTED]")
}
