package service

import (
	"context"
	"testing"
	"time"
)

func TestLoadMaskFromBase64(t *testing.T) {
	loader := newTestLoader(nil)
	src := gradient(6, 5, false)
	payload := encodeBase64PNG(t, src)

	mask := loader.LoadMaskFromBase64(payload, ChannelGreen)
	assertShape(t, mask, [4]int{1, 5, 6, 1})
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			if got, want := mask.At(0, y, x, 0), float32(src.NRGBAAt(x, y).G)/255; got != want {
				t.Fatalf("green(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// opaque source gets a synthesized alpha channel
	assertAll(t, loader.LoadMaskFromBase64(payload, ChannelAlpha), 1)
}

func TestLoadMaskFromBase64Failures(t *testing.T) {
	loader := newTestLoader(nil)
	payload := encodeBase64PNG(t, gradient(2, 2, false))

	assertPlaceholder(t, nil, loader.LoadMaskFromBase64(payload, "purple"))
	assertPlaceholder(t, nil, loader.LoadMaskFromBase64("%%%", ChannelRed))
}

func TestLoadMaskFromURL(t *testing.T) {
	server := newImageServer(t)
	loader := newTestLoader(NewHTTPFetcher("test"))
	src := gradient(16, 8, true)

	mask := loader.LoadMaskFromURL(context.Background(), server.URL+"/good.png", 5*time.Second, ChannelAlpha)
	assertShape(t, mask, [4]int{1, 8, 16, 1})
	if got, want := mask.At(0, 4, 7, 0), float32(src.NRGBAAt(7, 4).A)/255; got != want {
		t.Errorf("alpha(7,4) = %v, want %v", got, want)
	}

	red := loader.LoadMaskFromURL(context.Background(), server.URL+"/good.png", 5*time.Second, ChannelRed)
	if got, want := red.At(0, 4, 7, 0), float32(src.NRGBAAt(7, 4).R)/255; got != want {
		t.Errorf("red(7,4) = %v, want %v", got, want)
	}

	failed := loader.LoadMaskFromURL(context.Background(), server.URL+"/missing.png", 5*time.Second, ChannelAlpha)
	assertPlaceholder(t, nil, failed)
}
