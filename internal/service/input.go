package service

import (
	"regexp"
	"strings"

	"algodraft-be/internal/constant"
	"algodraft-be/internal/pkg/apperror"
)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// sanitizeText normalizes line endings, strips NUL bytes and collapses
// runs of blank lines so prompts stay within predictable bounds.
func sanitizeText(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\x00", "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func validatePrompt(raw string) (string, error) {
	s := sanitizeText(raw)
	if s == "" {
		return "", apperror.New(apperror.KindMalformedRequest, "prompt must not be empty")
	}
	if len(s) > constant.MaxPromptLength {
		return "", apperror.Newf(apperror.KindMalformedRequest,
			"prompt exceeds the maximum length of %d characters", constant.MaxPromptLength)
	}
	return s, nil
}

func validateCode(raw string) (string, error) {
	s := sanitizeText(raw)
	if s == "" {
		return "", apperror.New(apperror.KindMalformedRequest, "selected code must not be empty")
	}
	if len(s) > constant.MaxCodeLength {
		return "", apperror.Newf(apperror.KindMalformedRequest,
			"selected code exceeds the maximum length of %d characters", constant.MaxCodeLength)
	}
	return s, nil
}
