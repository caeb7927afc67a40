package service

import (
	"context"
	"strings"
	"time"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// Timeout bounds for URL nodes, in seconds.
const (
	DefaultTimeout = 10
	MinTimeout     = 1
	MaxTimeout     = 60
)

// FetchImage 下载并解码单个 URL，alpha 通道总是作为掩码
func (l *Loader) FetchImage(ctx context.Context, url string, timeout time.Duration) model.Result {
	url = strings.TrimSpace(url)
	data, err := l.fetcher.Fetch(ctx, url, timeout)
	if err != nil {
		return model.Failed(url, err)
	}
	return decodeResult(url, data, true)
}

// LoadURL 单个 URL 加载节点
func (l *Loader) LoadURL(ctx context.Context, url string, timeout time.Duration) (*model.Tensor, *model.Tensor) {
	return l.resolve(l.FetchImage(ctx, url, timeout), "url image")
}

// ParseURLList 按行拆分，只保留 http:// 或 https:// 开头的行
func ParseURLList(text string) []string {
	urls := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			urls = append(urls, strings.TrimSpace(line))
		}
	}
	return urls
}

// LoadURLBatch 批量 URL 加载节点，顺序下载，失败项替换为占位图
func (l *Loader) LoadURLBatch(ctx context.Context, urls string, timeout time.Duration) ([]*model.Tensor, []*model.Tensor) {
	list := ParseURLList(urls)
	images := make([]*model.Tensor, 0, len(list))
	masks := make([]*model.Tensor, 0, len(list))
	for _, url := range list {
		img, mask := l.LoadURL(ctx, url, timeout)
		images = append(images, img)
		masks = append(masks, mask)
	}
	return images, masks
}
