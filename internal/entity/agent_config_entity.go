package entity

// AgentConfiguration is the single mutable record selecting which model
// backend serves completions. Persisted as a small JSON document; the
// api_key field stays in the file and must never reach version control.
type AgentConfiguration struct {
	Mode           string `json:"mode"`             // "local" | "cloud"
	LocalModel     string `json:"local_model"`      // Ollama general model
	LocalCodeModel string `json:"local_code_model"` // Ollama code model
	CloudProvider  string `json:"cloud_provider"`   // meaningful when Mode == "cloud"
	CloudModel     string `json:"cloud_model"`
	APIKey         string `json:"api_key"`
}

const (
	ModeLocal = "local"
	ModeCloud = "cloud"
)

const (
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderHuggingFace = "huggingface"
)

func DefaultAgentConfiguration() AgentConfiguration {
	return AgentConfiguration{
		Mode:           ModeLocal,
		LocalModel:     "mistral",
		LocalCodeModel: "deepseek-coder:6.7b",
		CloudProvider:  ProviderOpenAI,
		CloudModel:     "gpt-4o",
		APIKey:         "",
	}
}
