package dto

import (
	"algodraft-be/internal/entity"
)

// UpdateConfigRequest is a partial configuration update; absent fields
// keep their stored value.
type UpdateConfigRequest struct {
	Mode           *string `json:"mode,omitempty"`
	LocalModel     *string `json:"local_model,omitempty"`
	LocalCodeModel *string `json:"local_code_model,omitempty"`
	CloudProvider  *string `json:"cloud_provider,omitempty"`
	CloudModel     *string `json:"cloud_model,omitempty"`
	APIKey         *string `json:"api_key,omitempty"`
}

func (r UpdateConfigRequest) ToPatch() entity.AgentConfigurationPatch {
	return entity.AgentConfigurationPatch{
		Mode:           r.Mode,
		LocalModel:     r.LocalModel,
		LocalCodeModel: r.LocalCodeModel,
		CloudProvider:  r.CloudProvider,
		CloudModel:     r.CloudModel,
		APIKey:         r.APIKey,
	}
}

// ConfigResponse mirrors the stored record with the credential omitted;
// APIKeySet tells clients whether one is stored without echoing it.
type ConfigResponse struct {
	Mode               string            `json:"mode"`
	LocalModel         string            `json:"local_model"`
	LocalCodeModel     string            `json:"local_code_model"`
	CloudProvider      string            `json:"cloud_provider"`
	CloudModel         string            `json:"cloud_model"`
	APIKeySet          bool              `json:"api_key_set"`
	AvailableProviders map[string]string `json:"available_providers,omitempty"`
}

func NewConfigResponse(cfg entity.AgentConfiguration, providers map[string]string) ConfigResponse {
	return ConfigResponse{
		Mode:               cfg.Mode,
		LocalModel:         cfg.LocalModel,
		LocalCodeModel:     cfg.LocalCodeModel,
		CloudProvider:      cfg.CloudProvider,
		CloudModel:         cfg.CloudModel,
		APIKeySet:          cfg.APIKey != "",
		AvailableProviders: providers,
	}
}
