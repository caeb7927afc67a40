package service

import (
	"fmt"
	"image"
	"math"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/disintegration/imaging"
)

// Mask channel names accepted by the mask extractors.
const (
	ChannelAlpha = "alpha"
	ChannelRed   = "red"
	ChannelGreen = "green"
	ChannelBlue  = "blue"
)

var channelIndex = map[string]int{
	ChannelRed:   0,
	ChannelGreen: 1,
	ChannelBlue:  2,
	ChannelAlpha: 3,
}

// hasAlpha reports whether the decoded image carries its own alpha channel.
// Paletted and gray images are treated as opaque.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.NYCbCrA:
		return true
	}
	return false
}

// SplitComponents 拆分颜色图与掩码
//
// The mask is the source alpha only when wantsAlpha is set and the image has
// alpha; otherwise it is fully opaque. The returned color image is opaque.
func SplitComponents(img image.Image, wantsAlpha bool) (*image.NRGBA, *image.Gray) {
	rgba := imaging.Clone(img)
	b := rgba.Bounds()
	mask := image.NewGray(b)
	useAlpha := wantsAlpha && hasAlpha(img)

	for y := 0; y < b.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x := 0; x < b.Dx(); x++ {
			if useAlpha {
				mrow[x] = row[x*4+3]
			} else {
				mrow[x] = 255
			}
			row[x*4+3] = 255
		}
	}
	return rgba, mask
}

// ExtractChannel 将图像转换为 RGBA 后取出单个通道
func ExtractChannel(img image.Image, channel string) (*image.Gray, error) {
	idx, ok := channelIndex[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}

	rgba := imaging.Clone(img)
	b := rgba.Bounds()
	out := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = rgba.Pix[y*rgba.Stride+x*4+idx]
		}
	}
	return out, nil
}

// ImageToTensor 颜色图转 (1,H,W,3) 张量
func ImageToTensor(img *image.NRGBA) *model.Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := model.Zeros(h, w, 3)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			o := (y*w + x) * 3
			t.Data[o] = float32(row[x*4]) / 255
			t.Data[o+1] = float32(row[x*4+1]) / 255
			t.Data[o+2] = float32(row[x*4+2]) / 255
		}
	}
	return t
}

// MaskToTensor 单通道图转 (1,H,W,1) 张量
func MaskToTensor(mask *image.Gray) *model.Tensor {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	t := model.Zeros(h, w, 1)
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < w; x++ {
			t.Data[y*w+x] = float32(row[x]) / 255
		}
	}
	return t
}

// TensorToImage 将张量的某一帧还原为 8 位图像
func TensorToImage(t *model.Tensor, frame int) (*image.NRGBA, error) {
	if frame < 0 || frame >= t.Batch() {
		return nil, fmt.Errorf("frame %d out of range for %v", frame, t)
	}
	c := t.Channels()
	if c != 1 && c != 3 && c != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", c)
	}

	w, h := t.Width(), t.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := img.Pix[y*img.Stride+x*4:]
			if c == 1 {
				v := quantize(t.At(frame, y, x, 0))
				p[0], p[1], p[2] = v, v, v
			} else {
				p[0] = quantize(t.At(frame, y, x, 0))
				p[1] = quantize(t.At(frame, y, x, 1))
				p[2] = quantize(t.At(frame, y, x, 2))
			}
			p[3] = 255
		}
	}
	return img, nil
}

func quantize(v float32) uint8 {
	f := float64(v)
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(f * 255))
}

// Placeholder 生成全零的占位图
func Placeholder(width, height int) *model.Tensor {
	return model.Zeros(height, width, 3)
}

// PlaceholderPair 占位图及其单通道掩码
func PlaceholderPair(width, height int) (*model.Tensor, *model.Tensor) {
	img := Placeholder(width, height)
	return img, img.Channel(0)
}
