package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // bmp/tiff/gif/jpeg/png are registered by imaging
)

const dataURIPrefix = "data:image"

// StripDataURI 去掉 data:image...; 前缀（到第一个逗号为止）
func StripDataURI(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, dataURIPrefix) {
		return s, nil
	}
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return "", fmt.Errorf("%w: data uri without payload", ErrBase64)
	}
	return s[i+1:], nil
}

// DecodeBase64 解码 base64 文本（可带 data URI 前缀）为原始字节
func DecodeBase64(s string) ([]byte, error) {
	payload, err := StripDataURI(s)
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return data, nil
}

// DecodeImage 将图像字节解码为位图
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// OpenImage 打开并解码本地图像文件
func OpenImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}
