package service

import "errors"

var (
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrDecode            = errors.New("image decode failed")
	ErrBase64            = errors.New("invalid base64 payload")
	ErrUnknownChannel    = errors.New("unknown mask channel")
	ErrInvalidCrop       = errors.New("crop margins exceed image bounds")
	ErrInvalidSize       = errors.New("resize dimensions must be positive")
	ErrBatchSize         = errors.New("expected a single-frame image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidParam      = errors.New("invalid node parameter")
	ErrUnknownNode       = errors.New("unknown node kind")
	ErrUnknownBackend    = errors.New("unknown preprocess backend")
	ErrQueueFull         = errors.New("invocation queue is full")
)
