package service

import (
	"strings"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// DecodeBase64Image 解码 base64 图像
func (l *Loader) DecodeBase64Image(payload string, hasAlpha bool) model.Result {
	data, err := DecodeBase64(payload)
	if err != nil {
		return model.Failed(payload, err)
	}
	return decodeResult(payload, data, hasAlpha)
}

// LoadBase64 单个 base64 加载节点
func (l *Loader) LoadBase64(payload string, hasAlpha bool) (*model.Tensor, *model.Tensor) {
	return l.resolve(l.DecodeBase64Image(payload, hasAlpha), "base64 image")
}

// SplitPayloads 按行拆分并丢弃空行
func SplitPayloads(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// LoadBase64Batch 批量 base64 加载节点
func (l *Loader) LoadBase64Batch(text string, hasAlpha bool) ([]*model.Tensor, []*model.Tensor) {
	list := SplitPayloads(text)
	images := make([]*model.Tensor, 0, len(list))
	masks := make([]*model.Tensor, 0, len(list))
	for _, payload := range list {
		img, mask := l.LoadBase64(payload, hasAlpha)
		images = append(images, img)
		masks = append(masks, mask)
	}
	return images, masks
}

// Base64ToImage 解码为颜色张量，丢弃掩码
func (l *Loader) Base64ToImage(payload string, hasAlpha bool) *model.Tensor {
	img, _ := l.resolve(l.DecodeBase64Image(payload, hasAlpha), "base64 image")
	return img
}
