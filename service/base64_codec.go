package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/disintegration/imaging"
)

// Encoder 图像编码为 base64 文本
type Encoder struct {
	jpegQuality int
}

func NewEncoder(jpegQuality int) *Encoder {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 75
	}
	return &Encoder{jpegQuality: jpegQuality}
}

// EncodeImage 将单帧张量编码为 PNG 或 JPEG 字节
func (e *Encoder) EncodeImage(t *model.Tensor, format string) ([]byte, error) {
	var f imaging.Format
	switch strings.ToUpper(format) {
	case "PNG":
		f = imaging.PNG
	case "JPEG", "JPG":
		f = imaging.JPEG
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if t.Batch() != 1 {
		return nil, fmt.Errorf("%w: got batch of %d", ErrBatchSize, t.Batch())
	}

	img, err := TensorToImage(t, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(e.jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImageToBase64 图像转 base64 节点
func (e *Encoder) ImageToBase64(t *model.Tensor, format string) (string, error) {
	data, err := e.EncodeImage(t, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeFrames 将张量的每一帧编码为 base64 PNG
func (e *Encoder) EncodeFrames(t *model.Tensor) ([]string, error) {
	out := make([]string, 0, t.Batch())
	for i := 0; i < t.Batch(); i++ {
		frame, err := t.Frame(i)
		if err != nil {
			return nil, err
		}
		s, err := e.ImageToBase64(frame, "PNG")
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeFrames 将多个 base64 图像解码并拼接为一个批次张量，尺寸必须一致
func DecodeFrames(payloads []string) (*model.Tensor, error) {
	frames := make([]*model.Tensor, 0, len(payloads))
	for i, p := range payloads {
		data, err := DecodeBase64(p)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		img, err := DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		rgb, _ := SplitComponents(img, false)
		frames = append(frames, ImageToTensor(rgb))
	}
	return model.Stack(frames...)
}
