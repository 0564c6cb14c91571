package factory

import (
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/pkg/llm"
	"algodraft-be/pkg/llm/anthropic"
	"algodraft-be/pkg/llm/huggingface"
	"algodraft-be/pkg/llm/ollama"
	"algodraft-be/pkg/llm/openai"
)

// NewLLMProvider builds the concrete client for a provider type. Adding
// a backend means adding a case here, nowhere else.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, "", modelName), nil
	case "anthropic":
		return anthropic.NewAnthropicProvider(apiKey, "", modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, "", modelName), nil
	default:
		return nil, apperror.Newf(apperror.KindUnsupportedProvider,
			"unsupported LLM provider: %s", providerType)
	}
}
