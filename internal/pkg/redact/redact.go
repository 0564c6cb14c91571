// Package redact scrubs credential material from text that is about to
// leave the process, typically error messages assembled by provider
// clients. Backend SDKs have a habit of echoing request headers into
// their errors, so every outbound message passes through here.
package redact

import "regexp"

const Placeholder = "[REDACTED]"

// Known credential shapes. Token prefixes cover the supported cloud
// providers (sk- catches both OpenAI sk-proj-... and Anthropic
// sk-ant-... keys), the key-value patterns catch config dumps.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{8,}`),
	regexp.MustCompile(`hf_[A-Za-z0-9]{8,}`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._~+/=-]+`),
	regexp.MustCompile(`(?i)(api[_-]?key|credential|secret|token)["']?\s*[:=]\s*["']?[^\s"',}]+`),
}

// Sanitize replaces every credential-shaped substring with the fixed
// placeholder. Total: any input yields a valid output.
func Sanitize(message string) string {
	for _, p := range patterns {
		message = p.ReplaceAllString(message, Placeholder)
	}
	return message
}

// Error sanitizes err's text. Nil-safe for convenience at call sites.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}
