// Package configstore owns the mutable agent configuration record. All
// reads are immutable snapshots, all writes go through one merge-and-
// persist critical section backed by an atomic file replace.
package configstore

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"algodraft-be/internal/constant"
	"algodraft-be/internal/entity"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/logger"
)

type Store struct {
	path        string
	fallbackKey string
	log         logger.ILogger

	mu      sync.RWMutex
	current entity.AgentConfiguration
}

// New loads the persisted record from path, seeding (or restoring) the
// defaults when the file is missing or corrupt, matching how the
// service has always recovered from a bad config file.
func New(path, fallbackKey string, log logger.ILogger) (*Store, error) {
	s := &Store{
		path:        path,
		fallbackKey: fallbackKey,
		log:         log,
		current:     entity.DefaultAgentConfiguration(),
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.persist(s.current); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, apperror.Wrap(apperror.KindPersistence, "read config file", err)
	default:
		var loaded entity.AgentConfiguration
		if jsonErr := json.Unmarshal(raw, &loaded); jsonErr != nil {
			log.Warn("configstore", "config file corrupted, restoring defaults",
				map[string]interface{}{"error": jsonErr.Error()})
			if err := s.persist(s.current); err != nil {
				return nil, err
			}
		} else {
			s.current = withDefaults(loaded)
		}
	}

	return s, nil
}

// Get returns the current configuration snapshot. Safe for concurrent
// use; the returned value is a copy.
func (s *Store) Get() entity.AgentConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges non-nil patch fields into the current record, persists
// the result, and returns the new snapshot. If the durable write fails
// the in-memory record keeps its pre-update value.
func (s *Store) Update(patch entity.AgentConfigurationPatch) (entity.AgentConfiguration, error) {
	if err := validatePatch(patch); err != nil {
		return entity.AgentConfiguration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := merge(s.current, patch)
	if err := s.persist(merged); err != nil {
		return entity.AgentConfiguration{}, err
	}
	s.current = merged

	s.log.Info("configstore", "configuration updated", map[string]interface{}{
		"mode":           merged.Mode,
		"cloud_provider": merged.CloudProvider,
	})
	return merged, nil
}

// ResolveCredential returns the effective cloud credential for cfg: the
// per-config value when non-empty, else the process-wide fallback.
// Checked at dispatch time, not at write time, so switching to cloud
// mode without a key only fails on the next cloud call.
func (s *Store) ResolveCredential(cfg entity.AgentConfiguration) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if s.fallbackKey != "" {
		return s.fallbackKey, nil
	}
	return "", apperror.New(apperror.KindCredentialMissing,
		"no API key configured; set one via POST /config or the ALGODRAFT_API_KEY environment variable")
}

func (s *Store) persist(cfg entity.AgentConfiguration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return apperror.Wrap(apperror.KindPersistence, "encode config", err)
	}

	// Write-then-rename keeps the on-disk record whole even if the
	// process dies mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return apperror.Wrap(apperror.KindPersistence, "write config file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return apperror.Wrap(apperror.KindPersistence, "replace config file", err)
	}
	return nil
}

func validatePatch(patch entity.AgentConfigurationPatch) error {
	if patch.Mode != nil {
		mode := strings.ToLower(*patch.Mode)
		if mode != entity.ModeLocal && mode != entity.ModeCloud {
			return apperror.Newf(apperror.KindConfig, "mode must be 'local' or 'cloud', got %q", *patch.Mode)
		}
	}
	if patch.CloudProvider != nil {
		provider := strings.ToLower(*patch.CloudProvider)
		if _, ok := constant.CloudProviderDefaults[provider]; !ok {
			supported := make([]string, 0, len(constant.CloudProviderDefaults))
			for p := range constant.CloudProviderDefaults {
				supported = append(supported, p)
			}
			sort.Strings(supported)
			return apperror.Newf(apperror.KindConfig, "unsupported provider %q, supported: %s",
				*patch.CloudProvider, strings.Join(supported, ", "))
		}
	}
	return nil
}

func merge(current entity.AgentConfiguration, patch entity.AgentConfigurationPatch) entity.AgentConfiguration {
	if patch.Mode != nil {
		current.Mode = strings.ToLower(*patch.Mode)
	}
	if patch.LocalModel != nil {
		current.LocalModel = *patch.LocalModel
	}
	if patch.LocalCodeModel != nil {
		current.LocalCodeModel = *patch.LocalCodeModel
	}
	if patch.CloudProvider != nil {
		current.CloudProvider = strings.ToLower(*patch.CloudProvider)
	}
	if patch.CloudModel != nil {
		current.CloudModel = *patch.CloudModel
	}
	if patch.APIKey != nil {
		current.APIKey = *patch.APIKey
	}
	return current
}

// withDefaults fills fields absent from an older config file so every
// snapshot is complete.
func withDefaults(cfg entity.AgentConfiguration) entity.AgentConfiguration {
	def := entity.DefaultAgentConfiguration()
	if cfg.Mode == "" {
		cfg.Mode = def.Mode
	}
	if cfg.LocalModel == "" {
		cfg.LocalModel = def.LocalModel
	}
	if cfg.LocalCodeModel == "" {
		cfg.LocalCodeModel = def.LocalCodeModel
	}
	if cfg.CloudProvider == "" {
		cfg.CloudProvider = def.CloudProvider
	}
	if cfg.CloudModel == "" {
		cfg.CloudModel = def.CloudModel
	}
	return cfg
}
