package service

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
)

// Resampler 预处理所用的裁剪/缩放/模糊原语
type Resampler interface {
	Crop(img *image.NRGBA, rect image.Rectangle) (*image.NRGBA, error)
	Resize(img *image.NRGBA, width, height int) (*image.NRGBA, error)
	Blur(img *image.NRGBA, sigma float64) (*image.NRGBA, error)
}

var (
	resamplersMu sync.RWMutex
	resamplers   = map[string]func() Resampler{
		"imaging": func() Resampler { return imagingResampler{} },
	}
)

// RegisterResampler makes a backend available to NewResampler. Backends
// compiled behind build tags register themselves from init.
func RegisterResampler(name string, factory func() Resampler) {
	resamplersMu.Lock()
	defer resamplersMu.Unlock()
	resamplers[name] = factory
}

// NewResampler 按名称创建后端，空名称使用 imaging
func NewResampler(name string) (Resampler, error) {
	if name == "" {
		name = "imaging"
	}
	resamplersMu.RLock()
	factory, ok := resamplers[name]
	resamplersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Resamplers())
	}
	return factory(), nil
}

// Resamplers 已注册的后端名称
func Resamplers() []string {
	resamplersMu.RLock()
	defer resamplersMu.RUnlock()
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type imagingResampler struct{}

func (imagingResampler) Crop(img *image.NRGBA, rect image.Rectangle) (*image.NRGBA, error) {
	return imaging.Crop(img, rect), nil
}

// Resize stretches to exactly width x height with a bicubic filter.
func (imagingResampler) Resize(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	return imaging.Resize(img, width, height, imaging.CatmullRom), nil
}

func (imagingResampler) Blur(img *image.NRGBA, sigma float64) (*image.NRGBA, error) {
	return imaging.Blur(img, sigma), nil
}
