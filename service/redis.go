package service

import (
	"context"
	"errors"
	"time"

	"github.com/Samsany/comfyui-xdesign-nodes/config"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisService(cfg *config.RedisConfig) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisService{
		client: client,
		ttl:    cfg.TTL,
	}
}

func (s *RedisService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sourceKey(url string) string {
	return "source:" + utils.StringMD5(url)
}

// GetSource 从缓存获取已下载的图像字节，未命中返回 nil
func (s *RedisService) GetSource(ctx context.Context, url string) ([]byte, error) {
	data, err := s.client.Get(ctx, sourceKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 缓存未命中
		}
		return nil, err
	}
	return data, nil
}

// SetSource 缓存下载结果
func (s *RedisService) SetSource(ctx context.Context, url string, data []byte) error {
	return s.client.Set(ctx, sourceKey(url), data, s.ttl).Err()
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// SourceCache 下载缓存
type SourceCache interface {
	GetSource(ctx context.Context, url string) ([]byte, error)
	SetSource(ctx context.Context, url string, data []byte) error
}

// CachedFetcher 在 Fetcher 外层加一层缓存，缓存故障只记录日志
type CachedFetcher struct {
	next  Fetcher
	cache SourceCache
}

func NewCachedFetcher(next Fetcher, cache SourceCache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	cached, err := f.cache.GetSource(ctx, url)
	if err != nil {
		utils.Logger.Warn("failed to get cache", zap.String("url", url), zap.Error(err))
	}
	if cached != nil {
		utils.Logger.Debug("cache hit", zap.String("url", url))
		return cached, nil
	}

	data, err := f.next.Fetch(ctx, url, timeout)
	if err != nil {
		return nil, err
	}

	if err := f.cache.SetSource(ctx, url, data); err != nil {
		utils.Logger.Warn("failed to set cache", zap.String("url", url), zap.Error(err))
	}
	return data, nil
}
