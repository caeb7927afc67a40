package cmd

import (
	"context"

	"github.com/Samsany/comfyui-xdesign-nodes/config"
	"github.com/Samsany/comfyui-xdesign-nodes/service"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"go.uber.org/zap"
)

// app 节点运行所需的全部服务
type app struct {
	registry *service.Registry
	encoder  *service.Encoder
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	var fetcher service.Fetcher = service.NewHTTPFetcher(cfg.Loader.UserAgent)
	if cfg.Redis.Enabled {
		redisService := service.NewRedisService(&cfg.Redis)
		if err := redisService.Ping(ctx); err != nil {
			utils.Logger.Warn("redis connection failed, cache disabled", zap.Error(err))
			_ = redisService.Close()
		} else {
			utils.Logger.Info("redis connected successfully")
			fetcher = service.NewCachedFetcher(fetcher, redisService)
			a.closers = append(a.closers, redisService.Close)
		}
	}

	resampler, err := service.NewResampler(cfg.Preprocess.Backend)
	if err != nil {
		return nil, err
	}

	a.encoder = service.NewEncoder(cfg.Preprocess.JPEGQuality)
	a.registry = service.NewRegistry(
		service.NewLoader(fetcher, &cfg.Loader),
		service.NewPreprocessor(resampler),
		a.encoder,
		service.WithLimiter(service.NewLimiter(cfg.Server.MaxConcurrent, cfg.Server.QueueTimeout)),
	)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			utils.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
}
