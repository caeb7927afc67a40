package service

import (
	"context"
	"time"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
)

const (
	categoryImage = "X-Design/Image"
	categoryMask  = "X-Design/Mask"
)

// Node 宿主可调用的节点
type Node interface {
	Spec() NodeSpec
	Invoke(ctx context.Context, params map[string]any) ([]any, error)
}

// node 将类型化的参数结构体和处理函数组合成 Node
type node[P any] struct {
	spec NodeSpec
	run  func(ctx context.Context, p P) ([]any, error)
}

func (n *node[P]) Spec() NodeSpec { return n.spec }

func (n *node[P]) Invoke(ctx context.Context, params map[string]any) ([]any, error) {
	var p P
	if err := n.spec.Bind(params, &p); err != nil {
		return nil, err
	}
	return n.run(ctx, p)
}

type urlParams struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type urlBatchParams struct {
	URLs    string `mapstructure:"urls"`
	Timeout int    `mapstructure:"timeout"`
}

type base64Params struct {
	Base64   string `mapstructure:"base64_str"`
	HasAlpha bool   `mapstructure:"has_alpha"`
}

type base64BatchParams struct {
	Base64   string `mapstructure:"base64_data"`
	HasAlpha bool   `mapstructure:"has_alpha"`
}

type urlMaskParams struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
	Channel string `mapstructure:"channel"`
}

type base64MaskParams struct {
	Base64  string `mapstructure:"base64_str"`
	Channel string `mapstructure:"channel"`
}

type localFileParams struct {
	FilePath string `mapstructure:"file_path"`
	HasAlpha bool   `mapstructure:"has_alpha"`
}

type preprocessParams struct {
	Image        *model.Tensor `mapstructure:"image"`
	ResizeWidth  int           `mapstructure:"resize_width"`
	ResizeHeight int           `mapstructure:"resize_height"`
	CropLeft     int           `mapstructure:"crop_left"`
	CropTop      int           `mapstructure:"crop_top"`
	CropRight    int           `mapstructure:"crop_right"`
	CropBottom   int           `mapstructure:"crop_bottom"`
	BlurRadius   float64       `mapstructure:"blur_radius"`
}

type imageToBase64Params struct {
	Image  *model.Tensor `mapstructure:"image"`
	Format string        `mapstructure:"format"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func timeoutParam() ParamSpec {
	return intParam("timeout", DefaultTimeout, bound(MinTimeout), bound(MaxTimeout))
}

func channelParam() ParamSpec {
	return comboParam("channel", ChannelAlpha, ChannelAlpha, ChannelRed, ChannelGreen, ChannelBlue)
}

func imageMaskOutputs(imageName, maskName string, isList bool) []OutputSpec {
	return []OutputSpec{
		{Name: imageName, Type: OutImage, IsList: isList},
		{Name: maskName, Type: OutMask, IsList: isList},
	}
}

func newNodes(loader *Loader, pre *Preprocessor, enc *Encoder) []Node {
	return []Node{
		&node[urlParams]{
			spec: NodeSpec{
				Kind:        "LoadImageFromURL",
				DisplayName: "🌐 URL Image Loader",
				Category:    categoryImage,
				Function:    "load_single_url",
				Inputs: []ParamSpec{
					stringParam("url", "https://example.com/single-image.png", false),
					timeoutParam(),
				},
				Outputs: imageMaskOutputs("image", "mask", false),
			},
			run: func(ctx context.Context, p urlParams) ([]any, error) {
				img, mask := loader.LoadURL(ctx, p.URL, seconds(p.Timeout))
				return []any{img, mask}, nil
			},
		},
		&node[base64Params]{
			spec: NodeSpec{
				Kind:        "LoadImageFromBase64",
				DisplayName: "🔢 Base64 Image Loader",
				Category:    categoryImage,
				Function:    "load_single_base64",
				Inputs: []ParamSpec{
					stringParam("base64_str", "", true),
					boolParam("has_alpha", true),
				},
				Outputs: imageMaskOutputs("image", "mask", false),
			},
			run: func(_ context.Context, p base64Params) ([]any, error) {
				img, mask := loader.LoadBase64(p.Base64, p.HasAlpha)
				return []any{img, mask}, nil
			},
		},
		&node[urlBatchParams]{
			spec: NodeSpec{
				Kind:        "LoadImageFromURLBatch",
				DisplayName: "🌐 URL Image Loader (Batch)",
				Category:    categoryImage,
				Function:    "load_urls",
				Inputs: []ParamSpec{
					stringParam("urls", "https://example.com/image.png", true),
					timeoutParam(),
				},
				Outputs: imageMaskOutputs("images", "masks", true),
			},
			run: func(ctx context.Context, p urlBatchParams) ([]any, error) {
				images, masks := loader.LoadURLBatch(ctx, p.URLs, seconds(p.Timeout))
				return []any{images, masks}, nil
			},
		},
		&node[base64BatchParams]{
			spec: NodeSpec{
				Kind:        "LoadImageFromBase64Batch",
				DisplayName: "🔢 Base64 Image Loader (Batch)",
				Category:    categoryImage,
				Function:    "load_base64",
				Inputs: []ParamSpec{
					stringParam("base64_data", "", true),
					boolParam("has_alpha", true),
				},
				Outputs: imageMaskOutputs("images", "masks", true),
			},
			run: func(_ context.Context, p base64BatchParams) ([]any, error) {
				images, masks := loader.LoadBase64Batch(p.Base64, p.HasAlpha)
				return []any{images, masks}, nil
			},
		},
		&node[urlMaskParams]{
			spec: NodeSpec{
				Kind:        "LoadMaskFromURL",
				DisplayName: "🌐 Mask Loader from URL",
				Category:    categoryMask,
				Function:    "load_mask",
				Inputs: []ParamSpec{
					stringParam("url", "https://example.com/image.png", false),
					timeoutParam(),
					channelParam(),
				},
				Outputs: []OutputSpec{{Name: "mask", Type: OutMask}},
			},
			run: func(ctx context.Context, p urlMaskParams) ([]any, error) {
				return []any{loader.LoadMaskFromURL(ctx, p.URL, seconds(p.Timeout), p.Channel)}, nil
			},
		},
		&node[base64MaskParams]{
			spec: NodeSpec{
				Kind:        "LoadMaskFromBase64",
				DisplayName: "🔢 Mask Loader from Base64",
				Category:    categoryMask,
				Function:    "load_mask",
				Inputs: []ParamSpec{
					stringParam("base64_str", "", true),
					channelParam(),
				},
				Outputs: []OutputSpec{{Name: "mask", Type: OutMask}},
			},
			run: func(_ context.Context, p base64MaskParams) ([]any, error) {
				return []any{loader.LoadMaskFromBase64(p.Base64, p.Channel)}, nil
			},
		},
		&node[localFileParams]{
			spec: NodeSpec{
				Kind:        "LoadImageFromLocalFile",
				DisplayName: "📂 Local Image Loader",
				Category:    categoryImage,
				Function:    "load_local_file",
				Inputs: []ParamSpec{
					stringParam("file_path", "/path/to/image.png", false),
					boolParam("has_alpha", true),
				},
				Outputs: imageMaskOutputs("image", "mask", false),
			},
			run: func(_ context.Context, p localFileParams) ([]any, error) {
				img, mask := loader.LoadLocalFile(p.FilePath, p.HasAlpha)
				return []any{img, mask}, nil
			},
		},
		&node[preprocessParams]{
			spec: NodeSpec{
				Kind:        "ImagePreprocess",
				DisplayName: "🎛️ Image Preprocess",
				Category:    categoryImage,
				Function:    "preprocess",
				Inputs: []ParamSpec{
					imageParam("image"),
					intParam("resize_width", 512, bound(1), nil),
					intParam("resize_height", 512, bound(1), nil),
					intParam("crop_left", 0, nil, nil),
					intParam("crop_top", 0, nil, nil),
					intParam("crop_right", 0, nil, nil),
					intParam("crop_bottom", 0, nil, nil),
					{Name: "blur_radius", Type: TypeFloat, Default: 0.0, Min: bound(0)},
				},
				Outputs: []OutputSpec{{Name: "processed_image", Type: OutImage}},
			},
			run: func(_ context.Context, p preprocessParams) ([]any, error) {
				out, err := pre.Preprocess(p.Image, PreprocessOptions{
					ResizeWidth:  p.ResizeWidth,
					ResizeHeight: p.ResizeHeight,
					CropLeft:     p.CropLeft,
					CropTop:      p.CropTop,
					CropRight:    p.CropRight,
					CropBottom:   p.CropBottom,
					BlurRadius:   p.BlurRadius,
				})
				if err != nil {
					return nil, err
				}
				return []any{out}, nil
			},
		},
		&node[imageToBase64Params]{
			spec: NodeSpec{
				Kind:        "ImageToBase64",
				DisplayName: "🔀 Image → Base64",
				Category:    categoryImage,
				Function:    "image_to_base64",
				Inputs: []ParamSpec{
					imageParam("image"),
					comboParam("format", "PNG", "PNG", "JPEG"),
				},
				Outputs: []OutputSpec{{Name: "base64_str", Type: OutString}},
			},
			run: func(_ context.Context, p imageToBase64Params) ([]any, error) {
				s, err := enc.ImageToBase64(p.Image, p.Format)
				if err != nil {
					return nil, err
				}
				return []any{s}, nil
			},
		},
		&node[base64Params]{
			spec: NodeSpec{
				Kind:        "Base64ToImage",
				DisplayName: "🔀 Base64 → Image",
				Category:    categoryImage,
				Function:    "base64_to_image",
				Inputs: []ParamSpec{
					stringParam("base64_str", "", true),
					boolParam("has_alpha", true),
				},
				Outputs: []OutputSpec{{Name: "image", Type: OutImage}},
			},
			run: func(_ context.Context, p base64Params) ([]any, error) {
				return []any{loader.Base64ToImage(p.Base64, p.HasAlpha)}, nil
			},
		},
	}
}
