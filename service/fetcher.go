package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher 获取远程图像字节
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// HTTPFetcher 单次 GET，不重试
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "image/*")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client}
}

// Fetch 下载 url 的完整响应体，非 2xx 视为失败
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s returned %s", ErrHTTPStatus, url, resp.Status())
	}
	return resp.Body(), nil
}
