package service

import (
	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// OpenFile 读取并解码本地文件
func (l *Loader) OpenFile(path string, hasAlpha bool) model.Result {
	img, err := OpenImage(path)
	if err != nil {
		return model.Failed(path, err)
	}
	color, mask := SplitComponents(img, hasAlpha)
	return model.Ok(path, ImageToTensor(color), MaskToTensor(mask))
}

// LoadLocalFile 本地文件加载节点
func (l *Loader) LoadLocalFile(path string, hasAlpha bool) (*model.Tensor, *model.Tensor) {
	return l.resolve(l.OpenFile(path, hasAlpha), "local image")
}
