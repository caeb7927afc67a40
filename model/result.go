package model

// Result 单个来源的加载结果：成功时携带图像与掩码，失败时携带原因
type Result struct {
	Source string
	Image  *Tensor
	Mask   *Tensor
	Err    error
}

// Ok 构造成功结果
func Ok(source string, image, mask *Tensor) Result {
	return Result{Source: source, Image: image, Mask: mask}
}

// Failed 构造失败结果
func Failed(source string, err error) Result {
	return Result{Source: source, Err: err}
}

func (r Result) Failed() bool {
	return r.Err != nil
}
