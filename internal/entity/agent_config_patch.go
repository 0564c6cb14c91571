package entity

// AgentConfigurationPatch is a partial configuration update. Nil fields
// keep their current value.
type AgentConfigurationPatch struct {
	Mode           *string `json:"mode,omitempty"`
	LocalModel     *string `json:"local_model,omitempty"`
	LocalCodeModel *string `json:"local_code_model,omitempty"`
	CloudProvider  *string `json:"cloud_provider,omitempty"`
	CloudModel     *string `json:"cloud_model,omitempty"`
	APIKey         *string `json:"api_key,omitempty"`
}
