package service

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/mitchellh/mapstructure"
)

// ParamType 输入参数的基础类型
type ParamType string

const (
	TypeString  ParamType = "STRING"
	TypeInt     ParamType = "INT"
	TypeFloat   ParamType = "FLOAT"
	TypeBoolean ParamType = "BOOLEAN"
	TypeCombo   ParamType = "COMBO"
	TypeImage   ParamType = "IMAGE"
)

// Output types.
const (
	OutImage  = "IMAGE"
	OutMask   = "MASK"
	OutString = "STRING"
)

// ParamSpec 输入参数定义
type ParamSpec struct {
	Name      string
	Type      ParamType
	Default   any
	Min       *float64
	Max       *float64
	Multiline bool
	Options   []string
}

// OutputSpec 输出定义
type OutputSpec struct {
	Name   string
	Type   string
	IsList bool
}

// NodeSpec 节点的完整声明
type NodeSpec struct {
	Kind        string
	DisplayName string
	Category    string
	Function    string
	Inputs      []ParamSpec
	Outputs     []OutputSpec
}

func bound(v float64) *float64 { return &v }

func stringParam(name, def string, multiline bool) ParamSpec {
	return ParamSpec{Name: name, Type: TypeString, Default: def, Multiline: multiline}
}

func intParam(name string, def int, min, max *float64) ParamSpec {
	return ParamSpec{Name: name, Type: TypeInt, Default: def, Min: min, Max: max}
}

func boolParam(name string, def bool) ParamSpec {
	return ParamSpec{Name: name, Type: TypeBoolean, Default: def}
}

func comboParam(name, def string, options ...string) ParamSpec {
	return ParamSpec{Name: name, Type: TypeCombo, Default: def, Options: options}
}

func imageParam(name string) ParamSpec {
	return ParamSpec{Name: name, Type: TypeImage}
}

// Info 转换为 API 描述
func (s NodeSpec) Info() model.NodeInfo {
	info := model.NodeInfo{
		Kind:        s.Kind,
		DisplayName: s.DisplayName,
		Category:    s.Category,
		Function:    s.Function,
		Inputs:      make([]model.ParamInfo, 0, len(s.Inputs)),
		Outputs:     make([]model.OutInfo, 0, len(s.Outputs)),
	}
	for _, p := range s.Inputs {
		info.Inputs = append(info.Inputs, model.ParamInfo{
			Name:      p.Name,
			Type:      string(p.Type),
			Default:   p.Default,
			Min:       p.Min,
			Max:       p.Max,
			Multiline: p.Multiline,
			Options:   p.Options,
		})
	}
	for _, o := range s.Outputs {
		info.Outputs = append(info.Outputs, model.OutInfo{Name: o.Name, Type: o.Type, IsList: o.IsList})
	}
	return info
}

// Bind 填充默认值、校验并解码参数到 out（带 mapstructure 标签的结构体指针）
//
// INT and FLOAT values are clamped into [Min, Max]; COMBO values must be one
// of Options; IMAGE inputs are required.
func (s NodeSpec) Bind(raw map[string]any, out any) error {
	values := make(map[string]any, len(s.Inputs))
	for _, p := range s.Inputs {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Type == TypeImage {
				return fmt.Errorf("%w: %s.%s is required", ErrInvalidParam, s.Kind, p.Name)
			}
			v = p.Default
		}

		normalized, err := p.normalize(v)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %v", ErrInvalidParam, s.Kind, p.Name, err)
		}
		values[p.Name] = normalized
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidParam, s.Kind, err)
	}
	return nil
}

func (p ParamSpec) normalize(v any) (any, error) {
	switch p.Type {
	case TypeInt, TypeFloat:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if p.Min != nil {
			f = math.Max(f, *p.Min)
		}
		if p.Max != nil {
			f = math.Min(f, *p.Max)
		}
		if p.Type == TypeInt {
			return int(f), nil
		}
		return f, nil
	case TypeCombo:
		s := fmt.Sprint(v)
		if !slices.Contains(p.Options, s) {
			return nil, fmt.Errorf("%q not in %v", s, p.Options)
		}
		return s, nil
	case TypeImage:
		if _, ok := v.(*model.Tensor); !ok {
			return nil, fmt.Errorf("expected image tensor, got %T", v)
		}
	}
	return v, nil
}

func toFloat(v any) (float64, error) {
	f, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected finite number, got %v", v)
	}
	return f, nil
}

func parseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}
