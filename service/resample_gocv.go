//go:build gocv

package service

import (
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

func init() {
	RegisterResampler("gocv", func() Resampler { return gocvResampler{} })
}

// gocvResampler 基于 OpenCV 的预处理后端
type gocvResampler struct{}

func (gocvResampler) apply(img *image.NRGBA, fn func(src gocv.Mat, dst *gocv.Mat)) (*image.NRGBA, error) {
	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	fn(src, &dst)

	out, err := dst.ToImage()
	if err != nil {
		return nil, err
	}
	return imaging.Clone(out), nil
}

func (r gocvResampler) Crop(img *image.NRGBA, rect image.Rectangle) (*image.NRGBA, error) {
	return r.apply(img, func(src gocv.Mat, dst *gocv.Mat) {
		region := src.Region(rect)
		defer region.Close()
		region.CopyTo(dst)
	})
}

func (r gocvResampler) Resize(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	return r.apply(img, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.Resize(src, dst, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationCubic)
	})
}

func (r gocvResampler) Blur(img *image.NRGBA, sigma float64) (*image.NRGBA, error) {
	return r.apply(img, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.GaussianBlur(src, dst, image.Point{}, sigma, sigma, gocv.BorderDefault)
	})
}
