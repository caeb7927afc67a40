package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Samsany/comfyui-xdesign-nodes/config"
	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

// gradient returns a w x h NRGBA image whose samples encode their position.
func gradient(w, h int, alpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if alpha {
				a = uint8((x * 37) % 256)
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 10),
				G: uint8(y * 20),
				B: uint8((x + y) * 5),
				A: a,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeBase64PNG(t *testing.T, img image.Image) string {
	return base64.StdEncoding.EncodeToString(encodePNG(t, img))
}

func newTestLoader(fetcher Fetcher) *Loader {
	return NewLoader(fetcher, &config.Default().Loader)
}

func assertShape(t *testing.T, tensor *model.Tensor, want [4]int) {
	t.Helper()
	if tensor == nil {
		t.Fatalf("tensor is nil, want shape %v", want)
	}
	if tensor.Shape != want {
		t.Fatalf("shape = %v, want %v", tensor.Shape, want)
	}
	if len(tensor.Data) != want[0]*want[1]*want[2]*want[3] {
		t.Fatalf("data length %d does not match shape %v", len(tensor.Data), want)
	}
}

func assertPlaceholder(t *testing.T, img, mask *model.Tensor) {
	t.Helper()
	if img != nil {
		assertShape(t, img, [4]int{1, 512, 512, 3})
		assertAll(t, img, 0)
	}
	if mask != nil {
		assertShape(t, mask, [4]int{1, 512, 512, 1})
		assertAll(t, mask, 0)
	}
}

func assertAll(t *testing.T, tensor *model.Tensor, want float32) {
	t.Helper()
	for i, v := range tensor.Data {
		if v != want {
			t.Fatalf("data[%d] = %v, want %v", i, v, want)
		}
	}
}

func assertInUnitRange(t *testing.T, tensor *model.Tensor) {
	t.Helper()
	for i, v := range tensor.Data {
		if v < 0 || v > 1 {
			t.Fatalf("data[%d] = %v outside [0,1]", i, v)
		}
	}
}
