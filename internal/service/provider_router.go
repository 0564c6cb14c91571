package service

import (
	"algodraft-be/internal/entity"
	"algodraft-be/internal/repository/configstore"
	"algodraft-be/pkg/llm"
	"algodraft-be/pkg/llm/factory"
)

// ProviderSelection records which backend served a request, echoed into
// responses as model/provider metadata.
type ProviderSelection struct {
	Provider string
	Model    string
}

// IProviderRouter resolves the current configuration to a concrete
// model backend at dispatch time. Callers stay provider-agnostic.
type IProviderRouter interface {
	// Route returns the backend for the current configuration. forCode
	// selects the code-specialized local model where one is configured.
	Route(forCode bool) (llm.LLMProvider, ProviderSelection, error)
}

type providerRouter struct {
	store         *configstore.Store
	ollamaBaseURL string
}

func NewProviderRouter(store *configstore.Store, ollamaBaseURL string) IProviderRouter {
	return &providerRouter{
		store:         store,
		ollamaBaseURL: ollamaBaseURL,
	}
}

func (r *providerRouter) Route(forCode bool) (llm.LLMProvider, ProviderSelection, error) {
	cfg := r.store.Get()

	if cfg.Mode == entity.ModeCloud {
		credential, err := r.store.ResolveCredential(cfg)
		if err != nil {
			return nil, ProviderSelection{}, err
		}
		provider, err := factory.NewLLMProvider(cfg.CloudProvider, cfg.CloudModel, "", credential)
		if err != nil {
			return nil, ProviderSelection{}, err
		}
		return provider, ProviderSelection{Provider: cfg.CloudProvider, Model: cfg.CloudModel}, nil
	}

	model := cfg.LocalModel
	if forCode && cfg.LocalCodeModel != "" {
		model = cfg.LocalCodeModel
	}
	provider, err := factory.NewLLMProvider("ollama", model, r.ollamaBaseURL, "")
	if err != nil {
		return nil, ProviderSelection{}, err
	}
	return provider, ProviderSelection{Provider: "ollama", Model: model}, nil
}
