package service

import (
	"github.com/Samsany/comfyui-xdesign-nodes/config"
	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"go.uber.org/zap"
)

// Loader 负责从各类来源获取图像，失败时退化为占位图
type Loader struct {
	fetcher           Fetcher
	placeholderWidth  int
	placeholderHeight int
}

func NewLoader(fetcher Fetcher, cfg *config.LoaderConfig) *Loader {
	w, h := cfg.PlaceholderWidth, cfg.PlaceholderHeight
	if w <= 0 {
		w = 512
	}
	if h <= 0 {
		h = 512
	}
	return &Loader{
		fetcher:           fetcher,
		placeholderWidth:  w,
		placeholderHeight: h,
	}
}

// resolve 成功时返回结果中的图像与掩码，失败时记录日志并返回占位
func (l *Loader) resolve(r model.Result, kind string) (*model.Tensor, *model.Tensor) {
	if !r.Failed() {
		return r.Image, r.Mask
	}
	utils.Logger.Warn("failed to load "+kind+", using placeholder",
		zap.String("source", abbreviate(r.Source)),
		zap.Error(r.Err))
	return PlaceholderPair(l.placeholderWidth, l.placeholderHeight)
}

// resolveMask 同 resolve，只关心掩码
func (l *Loader) resolveMask(r model.Result, kind string) *model.Tensor {
	if !r.Failed() {
		return r.Mask
	}
	_, mask := l.resolve(r, kind)
	return mask
}

// decodeResult 解码字节并拆分为颜色张量与掩码张量
func decodeResult(source string, data []byte, wantsAlpha bool) model.Result {
	img, err := DecodeImage(data)
	if err != nil {
		return model.Failed(source, err)
	}
	color, mask := SplitComponents(img, wantsAlpha)
	return model.Ok(source, ImageToTensor(color), MaskToTensor(mask))
}

// decodeMaskResult 解码字节并取出指定通道
func decodeMaskResult(source string, data []byte, channel string) model.Result {
	img, err := DecodeImage(data)
	if err != nil {
		return model.Failed(source, err)
	}
	gray, err := ExtractChannel(img, channel)
	if err != nil {
		return model.Failed(source, err)
	}
	return model.Ok(source, nil, MaskToTensor(gray))
}

// abbreviate keeps base64 payloads out of the log.
func abbreviate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
