package model

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch 张量形状不一致
var ErrShapeMismatch = errors.New("tensor shape mismatch")

// Tensor 归一化的 NHWC 浮点张量，取值范围 [0,1]
type Tensor struct {
	Shape [4]int    `json:"shape"` // batch, height, width, channels
	Data  []float32 `json:"-"`
}

// NewTensor 创建指定形状的零张量
func NewTensor(n, h, w, c int) *Tensor {
	return &Tensor{
		Shape: [4]int{n, h, w, c},
		Data:  make([]float32, n*h*w*c),
	}
}

// Zeros 创建单帧零张量
func Zeros(h, w, c int) *Tensor {
	return NewTensor(1, h, w, c)
}

func (t *Tensor) Batch() int    { return t.Shape[0] }
func (t *Tensor) Height() int   { return t.Shape[1] }
func (t *Tensor) Width() int    { return t.Shape[2] }
func (t *Tensor) Channels() int { return t.Shape[3] }

func (t *Tensor) offset(n, y, x, c int) int {
	return ((n*t.Shape[1]+y)*t.Shape[2]+x)*t.Shape[3] + c
}

// At 读取一个采样值
func (t *Tensor) At(n, y, x, c int) float32 {
	return t.Data[t.offset(n, y, x, c)]
}

// Set 写入一个采样值
func (t *Tensor) Set(n, y, x, c int, v float32) {
	t.Data[t.offset(n, y, x, c)] = v
}

// Frame 返回第 i 帧的副本（batch=1）
func (t *Tensor) Frame(i int) (*Tensor, error) {
	if i < 0 || i >= t.Shape[0] {
		return nil, fmt.Errorf("frame %d out of range [0,%d)", i, t.Shape[0])
	}
	size := t.Shape[1] * t.Shape[2] * t.Shape[3]
	out := Zeros(t.Shape[1], t.Shape[2], t.Shape[3])
	copy(out.Data, t.Data[i*size:(i+1)*size])
	return out, nil
}

// Channel 截取单个通道，结果为 C=1 的新张量
func (t *Tensor) Channel(c int) *Tensor {
	out := NewTensor(t.Shape[0], t.Shape[1], t.Shape[2], 1)
	for i := 0; i < len(out.Data); i++ {
		out.Data[i] = t.Data[i*t.Shape[3]+c]
	}
	return out
}

// Stack 沿 batch 维拼接张量，除 batch 外的维度必须一致
func Stack(tensors ...*Tensor) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, errors.New("stack of zero tensors")
	}
	first := tensors[0]
	n := 0
	for _, t := range tensors {
		if t.Shape[1] != first.Shape[1] || t.Shape[2] != first.Shape[2] || t.Shape[3] != first.Shape[3] {
			return nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, t.Shape, first.Shape)
		}
		n += t.Shape[0]
	}

	out := NewTensor(n, first.Shape[1], first.Shape[2], first.Shape[3])
	pos := 0
	for _, t := range tensors {
		pos += copy(out.Data[pos:], t.Data)
	}
	return out, nil
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.Shape)
}
