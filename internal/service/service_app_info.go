package service

import (
	"context"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

type appInfoService struct {
	buildInfo models.AppBuildInfo
}

// NewAppInfoService rejects a build without a version stamp.
func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if buildInfo.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("build", buildInfo.String()).Msg("vault daemon build")
	return &appInfoService{buildInfo: buildInfo}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.buildInfo.BuildVersion()
}
