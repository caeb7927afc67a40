package model

// NodeInfo 节点描述信息
type NodeInfo struct {
	Kind        string      `json:"kind"`
	DisplayName string      `json:"display_name"`
	Category    string      `json:"category"`
	Function    string      `json:"function"`
	Inputs      []ParamInfo `json:"inputs"`
	Outputs     []OutInfo   `json:"outputs"`
}

// ParamInfo 输入参数定义
type ParamInfo struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Default   any      `json:"default,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Multiline bool     `json:"multiline,omitempty"`
	Options   []string `json:"options,omitempty"`
}

// OutInfo 输出定义
type OutInfo struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	IsList bool   `json:"is_list"`
}

// InvokeRequest 节点调用请求，IMAGE 参数为 base64 PNG 数组（每帧一个）
type InvokeRequest struct {
	Params map[string]any `json:"params"`
}

// NodeOutput 单个输出
type NodeOutput struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	IsList bool     `json:"is_list"`
	Shapes [][4]int `json:"shapes,omitempty"`
	Values []string `json:"values"`
}

// InvokeResult 节点调用结果
type InvokeResult struct {
	InvocationID string       `json:"invocation_id"`
	Kind         string       `json:"kind"`
	Outputs      []NodeOutput `json:"outputs"`
}

// InvokeResponse 调用响应
type InvokeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *InvokeResult `json:"data,omitempty"`
}

// NodesResponse 节点列表响应
type NodesResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []NodeInfo `json:"data"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
