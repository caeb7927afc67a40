package service

import (
	"errors"
	"testing"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

func tensorOf(t *testing.T, w, h int) *model.Tensor {
	t.Helper()
	rgb, _ := SplitComponents(gradient(w, h, false), false)
	return ImageToTensor(rgb)
}

func TestPreprocessResizeShape(t *testing.T) {
	checkResizeShape(t, NewPreprocessor(nil))
}

func TestPreprocessCropGeometry(t *testing.T) {
	checkCropGeometry(t, NewPreprocessor(nil))
}

func TestPreprocessBlur(t *testing.T) {
	checkBlur(t, NewPreprocessor(nil))
}

// The check* helpers run against any Resampler backend.

func checkResizeShape(t *testing.T, p *Preprocessor) {
	t.Helper()
	tests := []struct {
		srcW, srcH, w, h int
	}{
		{20, 10, 7, 3},
		{4, 4, 64, 32},
		{13, 17, 13, 17},
	}
	for _, tt := range tests {
		out, err := p.Preprocess(tensorOf(t, tt.srcW, tt.srcH), PreprocessOptions{ResizeWidth: tt.w, ResizeHeight: tt.h})
		if err != nil {
			t.Fatalf("Preprocess() error = %v", err)
		}
		assertShape(t, out, [4]int{1, tt.h, tt.w, 3})
		assertInUnitRange(t, out)
	}
}

func checkCropGeometry(t *testing.T, p *Preprocessor) {
	t.Helper()
	src := tensorOf(t, 10, 8)
	opts := PreprocessOptions{
		CropLeft: 2, CropTop: 1, CropRight: 3, CropBottom: 2,
		ResizeWidth: 5, ResizeHeight: 5,
	}

	out, err := p.Preprocess(src, opts)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	assertShape(t, out, [4]int{1, 5, 5, 3})
	// resize to the cropped size is an identity, so pixels map straight through
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			for c := 0; c < 3; c++ {
				if got, want := out.At(0, y, x, c), src.At(0, y+1, x+2, c); got != want {
					t.Fatalf("out(%d,%d,%d) = %v, want %v", x, y, c, got, want)
				}
			}
		}
	}
}

func TestCropRectPolicy(t *testing.T) {
	tests := []struct {
		name    string
		opts    PreprocessOptions
		wantErr bool
	}{
		{"no crop", PreprocessOptions{}, false},
		{"one pixel left", PreprocessOptions{CropLeft: 5, CropRight: 4}, false},
		{"horizontal overlap", PreprocessOptions{CropLeft: 5, CropRight: 5}, true},
		{"vertical overlap", PreprocessOptions{CropTop: 8}, true},
		{"negative margin", PreprocessOptions{CropLeft: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRect(10, 8, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CropRect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCrop) {
				t.Errorf("error = %v, want ErrInvalidCrop", err)
			}
		})
	}
}

func TestPreprocessErrorsPropagate(t *testing.T) {
	p := NewPreprocessor(nil)
	src := tensorOf(t, 4, 4)

	_, err := p.Preprocess(src, PreprocessOptions{CropLeft: 4, ResizeWidth: 2, ResizeHeight: 2})
	if !errors.Is(err, ErrInvalidCrop) {
		t.Errorf("error = %v, want ErrInvalidCrop", err)
	}
	_, err = p.Preprocess(src, PreprocessOptions{ResizeWidth: 0, ResizeHeight: 2})
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("error = %v, want ErrInvalidSize", err)
	}
}

func checkBlur(t *testing.T, p *Preprocessor) {
	t.Helper()

	// a single bright pixel spreads out under blur
	src := Placeholder(9, 9)
	for c := 0; c < 3; c++ {
		src.Set(0, 4, 4, c, 1)
	}
	opts := PreprocessOptions{ResizeWidth: 9, ResizeHeight: 9}

	sharp, err := p.Preprocess(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if sharp.At(0, 4, 3, 0) != 0 {
		t.Fatalf("unblurred neighbour = %v, want 0", sharp.At(0, 4, 3, 0))
	}

	opts.BlurRadius = 1.5
	blurred, err := p.Preprocess(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if blurred.At(0, 4, 3, 0) <= 0 {
		t.Errorf("blurred neighbour = %v, want > 0", blurred.At(0, 4, 3, 0))
	}
	if blurred.At(0, 4, 4, 0) >= 1 {
		t.Errorf("blurred centre = %v, want < 1", blurred.At(0, 4, 4, 0))
	}
}

func TestPreprocessBatch(t *testing.T) {
	p := NewPreprocessor(nil)
	batch, err := model.Stack(tensorOf(t, 6, 6), tensorOf(t, 6, 6))
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Preprocess(batch, PreprocessOptions{ResizeWidth: 3, ResizeHeight: 2})
	if err != nil {
		t.Fatal(err)
	}
	assertShape(t, out, [4]int{2, 2, 3, 3})
}

func TestNewResampler(t *testing.T) {
	if _, err := NewResampler(""); err != nil {
		t.Errorf("default backend: %v", err)
	}
	if _, err := NewResampler("imaging"); err != nil {
		t.Errorf("imaging backend: %v", err)
	}
	if _, err := NewResampler("nope"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("error = %v, want ErrUnknownBackend", err)
	}
}
