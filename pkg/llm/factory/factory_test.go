package factory

import (
	"testing"

	"algodraft-be/internal/pkg/apperror"
)

func TestNewLLMProvider(t *testing.T) {
	for _, providerType := range []string{"ollama", "openai", "anthropic", "huggingface"} {
		t.Run(providerType, func(t *testing.T) {
			p, err := NewLLMProvider(providerType, "some-model", "", "some-key")
			if err != nil {
				t.Fatalf("NewLLMProvider(%q) error = %v", providerType, err)
			}
			if p == nil {
				t.Fatalf("NewLLMProvider(%q) = nil", providerType)
			}
		})
	}
}

func TestNewLLMProviderUnsupported(t *testing.T) {
	_, err := NewLLMProvider("gemini", "model", "", "key")
	if err == nil {
		t.Fatal("error = nil, want UnsupportedProvider")
	}
	if kind := apperror.KindOf(err); kind != apperror.KindUnsupportedProvider {
		t.Errorf("kind = %s, want %s", kind, apperror.KindUnsupportedProvider)
	}
}
