package service

import (
	"context"
	"strings"
	"time"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// FetchMask 下载图像并取出指定通道
func (l *Loader) FetchMask(ctx context.Context, url string, timeout time.Duration, channel string) model.Result {
	url = strings.TrimSpace(url)
	data, err := l.fetcher.Fetch(ctx, url, timeout)
	if err != nil {
		return model.Failed(url, err)
	}
	return decodeMaskResult(url, data, channel)
}

// LoadMaskFromURL URL 遮罩加载节点
func (l *Loader) LoadMaskFromURL(ctx context.Context, url string, timeout time.Duration, channel string) *model.Tensor {
	return l.resolveMask(l.FetchMask(ctx, url, timeout, channel), "url mask")
}

// DecodeBase64Mask 解码 base64 图像并取出指定通道
func (l *Loader) DecodeBase64Mask(payload string, channel string) model.Result {
	data, err := DecodeBase64(payload)
	if err != nil {
		return model.Failed(payload, err)
	}
	return decodeMaskResult(payload, data, channel)
}

// LoadMaskFromBase64 Base64 遮罩加载节点
func (l *Loader) LoadMaskFromBase64(payload string, channel string) *model.Tensor {
	return l.resolveMask(l.DecodeBase64Mask(payload, channel), "base64 mask")
}
