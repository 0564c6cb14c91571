package service

import (
	"algodraft-be/internal/constant"
	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/logger"
	"algodraft-be/internal/repository/configstore"
)

type IConfigService interface {
	Get() dto.ConfigResponse
	Update(req dto.UpdateConfigRequest) (dto.ConfigResponse, error)
}

type configService struct {
	store *configstore.Store
	log   logger.ILogger
}

func NewConfigService(store *configstore.Store, log logger.ILogger) IConfigService {
	return &configService{store: store, log: log}
}

func (s *configService) Get() dto.ConfigResponse {
	return dto.NewConfigResponse(s.store.Get(), constant.CloudProviderDefaults)
}

func (s *configService) Update(req dto.UpdateConfigRequest) (dto.ConfigResponse, error) {
	cfg, err := s.store.Update(req.ToPatch())
	if err != nil {
		return dto.ConfigResponse{}, err
	}
	s.log.Info("config", "configuration updated", map[string]interface{}{
		"mode":           cfg.Mode,
		"cloud_provider": cfg.CloudProvider,
	})
	return dto.NewConfigResponse(cfg, constant.CloudProviderDefaults), nil
}
