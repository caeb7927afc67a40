package service

import (
	"fmt"
	"image"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// PreprocessOptions 预处理参数，裁剪边距以像素计
type PreprocessOptions struct {
	ResizeWidth  int
	ResizeHeight int
	CropLeft     int
	CropTop      int
	CropRight    int
	CropBottom   int
	BlurRadius   float64
}

// Preprocessor 裁剪、缩放、模糊
type Preprocessor struct {
	resampler Resampler
}

func NewPreprocessor(resampler Resampler) *Preprocessor {
	if resampler == nil {
		resampler = imagingResampler{}
	}
	return &Preprocessor{resampler: resampler}
}

// CropRect 计算裁剪框，边距为负或裁剪后为空时报错
func CropRect(width, height int, opts PreprocessOptions) (image.Rectangle, error) {
	if opts.CropLeft < 0 || opts.CropTop < 0 || opts.CropRight < 0 || opts.CropBottom < 0 {
		return image.Rectangle{}, fmt.Errorf("%w: negative margin", ErrInvalidCrop)
	}
	right, bottom := width-opts.CropRight, height-opts.CropBottom
	if right <= opts.CropLeft || bottom <= opts.CropTop {
		return image.Rectangle{}, fmt.Errorf("%w: margins (l=%d t=%d r=%d b=%d) on %dx%d image",
			ErrInvalidCrop, opts.CropLeft, opts.CropTop, opts.CropRight, opts.CropBottom, width, height)
	}
	return image.Rect(opts.CropLeft, opts.CropTop, right, bottom), nil
}

// Preprocess 对每一帧执行裁剪、缩放和可选的高斯模糊
func (p *Preprocessor) Preprocess(t *model.Tensor, opts PreprocessOptions) (*model.Tensor, error) {
	if opts.ResizeWidth < 1 || opts.ResizeHeight < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.ResizeWidth, opts.ResizeHeight)
	}
	if t.Batch() < 1 {
		return nil, fmt.Errorf("%w: empty batch", ErrBatchSize)
	}

	frames := make([]*model.Tensor, 0, t.Batch())
	for i := 0; i < t.Batch(); i++ {
		frame, err := p.processFrame(t, i, opts)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}
	return model.Stack(frames...)
}

func (p *Preprocessor) processFrame(t *model.Tensor, i int, opts PreprocessOptions) (*model.Tensor, error) {
	img, err := TensorToImage(t, i)
	if err != nil {
		return nil, err
	}

	rect, err := CropRect(t.Width(), t.Height(), opts)
	if err != nil {
		return nil, err
	}
	if img, err = p.resampler.Crop(img, rect); err != nil {
		return nil, err
	}
	if img, err = p.resampler.Resize(img, opts.ResizeWidth, opts.ResizeHeight); err != nil {
		return nil, err
	}
	if opts.BlurRadius > 0 {
		if img, err = p.resampler.Blur(img, opts.BlurRadius); err != nil {
			return nil, err
		}
	}
	return ImageToTensor(img), nil
}
