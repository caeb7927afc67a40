package service

import (
	"encoding/base64"
	"errors"
	"math"
	"testing"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

func TestImageToBase64PNGRoundTrip(t *testing.T) {
	enc := NewEncoder(75)
	loader := newTestLoader(nil)
	src := tensorOf(t, 12, 7)

	s, err := enc.ImageToBase64(src, "PNG")
	if err != nil {
		t.Fatalf("ImageToBase64() error = %v", err)
	}
	img, _ := loader.LoadBase64(s, true)
	assertShape(t, img, src.Shape)
	for i := range src.Data {
		if img.Data[i] != src.Data[i] {
			t.Fatalf("data[%d] = %v, want %v", i, img.Data[i], src.Data[i])
		}
	}
}

func TestImageToBase64JPEG(t *testing.T) {
	enc := NewEncoder(95)
	src := Placeholder(16, 16)
	for i := range src.Data {
		src.Data[i] = 0.5
	}

	s, err := enc.ImageToBase64(src, "JPEG")
	if err != nil {
		t.Fatalf("ImageToBase64() error = %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0xFF || raw[1] != 0xD8 {
		t.Fatalf("output is not a JPEG stream")
	}

	img := newTestLoader(nil).Base64ToImage(s, false)
	assertShape(t, img, src.Shape)
	for i, v := range img.Data {
		if math.Abs(float64(v-0.5)) > 0.05 {
			t.Fatalf("data[%d] = %v, want about 0.5", i, v)
		}
	}
}

func TestImageToBase64Errors(t *testing.T) {
	enc := NewEncoder(0)
	single := tensorOf(t, 2, 2)

	if _, err := enc.ImageToBase64(single, "GIF"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}

	batch, err := model.Stack(single, single)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.ImageToBase64(batch, "PNG"); !errors.Is(err, ErrBatchSize) {
		t.Errorf("error = %v, want ErrBatchSize", err)
	}
}
