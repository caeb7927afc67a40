package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	pngBytes := encodePNG(t, gradient(16, 8, true))

	mux := http.NewServeMux()
	mux.HandleFunc("/good.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	mux.HandleFunc("/garbage.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not an image"))
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestParseURLList(t *testing.T) {
	got := ParseURLList("https://a/1.png\nnotaurl\n\nhttp://b/2.png  \r\n  https://leading-space\nftp://c")
	want := []string{"https://a/1.png", "http://b/2.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseURLList() = %v, want %v", got, want)
	}
	if got := ParseURLList(""); len(got) != 0 {
		t.Errorf("ParseURLList(\"\") = %v, want empty", got)
	}
}

func TestLoadURL(t *testing.T) {
	server := newImageServer(t)
	loader := newTestLoader(NewHTTPFetcher("test"))

	img, mask := loader.LoadURL(context.Background(), "  "+server.URL+"/good.png\n", 5*time.Second)
	assertShape(t, img, [4]int{1, 8, 16, 3})
	assertShape(t, mask, [4]int{1, 8, 16, 1})
	assertInUnitRange(t, img)

	// alpha is always honored for URL sources
	src := gradient(16, 8, true)
	if got, want := mask.At(0, 0, 3, 0), float32(src.NRGBAAt(3, 0).A)/255; got != want {
		t.Errorf("mask(3,0) = %v, want %v", got, want)
	}
}

func TestLoadURLFailuresUsePlaceholder(t *testing.T) {
	server := newImageServer(t)
	loader := newTestLoader(NewHTTPFetcher("test"))

	tests := []struct {
		name string
		path string
	}{
		{"non-success status", "/missing.png"},
		{"undecodable body", "/garbage.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, mask := loader.LoadURL(context.Background(), server.URL+tt.path, 5*time.Second)
			assertPlaceholder(t, img, mask)
		})
	}

	t.Run("connection refused", func(t *testing.T) {
		img, mask := loader.LoadURL(context.Background(), "http://127.0.0.1:1/none.png", time.Second)
		assertPlaceholder(t, img, mask)
	})
}

func TestFetchResultCarriesReason(t *testing.T) {
	server := newImageServer(t)
	loader := newTestLoader(NewHTTPFetcher("test"))

	res := loader.FetchImage(context.Background(), server.URL+"/missing.png", time.Second)
	if !res.Failed() || !errors.Is(res.Err, ErrHTTPStatus) {
		t.Fatalf("result err = %v, want ErrHTTPStatus", res.Err)
	}

	res = loader.FetchImage(context.Background(), server.URL+"/garbage.png", time.Second)
	if !errors.Is(res.Err, ErrDecode) {
		t.Fatalf("result err = %v, want ErrDecode", res.Err)
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	server := newImageServer(t)
	fetcher := NewHTTPFetcher("test")

	start := time.Now()
	_, err := fetcher.Fetch(context.Background(), server.URL+"/slow.png", 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch took %v, timeout not applied", elapsed)
	}
}

func TestLoadURLBatch(t *testing.T) {
	server := newImageServer(t)
	loader := newTestLoader(NewHTTPFetcher("test"))

	input := server.URL + "/good.png\nnotaurl\n" + server.URL + "/missing.png"
	images, masks := loader.LoadURLBatch(context.Background(), input, 5*time.Second)

	if len(images) != 2 || len(masks) != 2 {
		t.Fatalf("got %d images, %d masks, want 2 each", len(images), len(masks))
	}
	assertShape(t, images[0], [4]int{1, 8, 16, 3})
	assertShape(t, masks[0], [4]int{1, 8, 16, 1})
	assertPlaceholder(t, images[1], masks[1])
}

func TestLoadURLBatchEmpty(t *testing.T) {
	loader := newTestLoader(NewHTTPFetcher("test"))
	images, masks := loader.LoadURLBatch(context.Background(), "nothing here\n", time.Second)
	if len(images) != 0 || len(masks) != 0 {
		t.Errorf("got %d/%d entries, want none", len(images), len(masks))
	}
}
