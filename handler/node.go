package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Samsany/comfyui-xdesign-nodes/middleware"
	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/Samsany/comfyui-xdesign-nodes/service"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NodeHandler struct {
	registry *service.Registry
	encoder  *service.Encoder
}

func NewNodeHandler(registry *service.Registry, encoder *service.Encoder) *NodeHandler {
	return &NodeHandler{
		registry: registry,
		encoder:  encoder,
	}
}

// List 返回全部节点定义
func (h *NodeHandler) List(c *gin.Context) {
	infos := make([]model.NodeInfo, 0)
	for _, kind := range h.registry.Kinds() {
		n, _ := h.registry.Lookup(kind)
		infos = append(infos, n.Spec().Info())
	}
	c.JSON(http.StatusOK, model.NodesResponse{
		Success: true,
		Message: "查询成功",
		Data:    infos,
	})
}

// Invoke 调用节点
func (h *NodeHandler) Invoke(c *gin.Context) {
	kind := c.Param("kind")
	n, ok := h.registry.Lookup(kind)
	if !ok {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Message: "节点不存在",
			Error:   kind,
		})
		return
	}

	var req model.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Message: "请求格式错误",
			Error:   err.Error(),
		})
		return
	}

	spec := n.Spec()
	params, err := decodeImageParams(spec, req.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Message: "图像参数解码失败",
			Error:   err.Error(),
		})
		return
	}

	id := c.GetString(middleware.InvocationIDKey)
	utils.Logger.Info("invoking node", zap.String("kind", kind), zap.String("invocation_id", id))

	outputs, err := h.registry.Invoke(c.Request.Context(), kind, params)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrInvalidParam):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrQueueFull):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, model.ErrorResponse{
			Success: false,
			Message: "节点执行失败",
			Error:   err.Error(),
		})
		return
	}

	result, err := h.encodeOutputs(spec, outputs)
	if err != nil {
		utils.Logger.Error("failed to encode outputs", zap.String("kind", kind), zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Message: "输出编码失败",
			Error:   err.Error(),
		})
		return
	}
	result.InvocationID = id
	result.Kind = kind

	c.JSON(http.StatusOK, model.InvokeResponse{
		Success: true,
		Message: "处理成功",
		Data:    result,
	})
}

// decodeImageParams 将 IMAGE 类型参数从 base64 PNG 转为张量
func decodeImageParams(spec service.NodeSpec, raw map[string]any) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for k, v := range raw {
		params[k] = v
	}
	for _, p := range spec.Inputs {
		if p.Type != service.TypeImage {
			continue
		}
		v, ok := params[p.Name]
		if !ok || v == nil {
			continue
		}

		var payloads []string
		switch val := v.(type) {
		case string:
			payloads = []string{val}
		case []any:
			for _, item := range val {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%s: expected base64 string, got %T", p.Name, item)
				}
				payloads = append(payloads, s)
			}
		default:
			return nil, fmt.Errorf("%s: expected base64 string or array, got %T", p.Name, v)
		}

		tensor, err := service.DecodeFrames(payloads)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		params[p.Name] = tensor
	}
	return params, nil
}

func (h *NodeHandler) encodeOutputs(spec service.NodeSpec, outputs []any) (*model.InvokeResult, error) {
	result := &model.InvokeResult{Outputs: make([]model.NodeOutput, 0, len(outputs))}
	for i, out := range outputs {
		o := model.NodeOutput{Values: make([]string, 0)}
		if i < len(spec.Outputs) {
			o.Name = spec.Outputs[i].Name
			o.Type = spec.Outputs[i].Type
			o.IsList = spec.Outputs[i].IsList
		}

		var tensors []*model.Tensor
		switch v := out.(type) {
		case string:
			o.Values = append(o.Values, v)
		case *model.Tensor:
			tensors = []*model.Tensor{v}
		case []*model.Tensor:
			tensors = v
		default:
			return nil, fmt.Errorf("output %d: unsupported type %T", i, out)
		}

		for _, t := range tensors {
			frames, err := h.encoder.EncodeFrames(t)
			if err != nil {
				return nil, fmt.Errorf("output %s: %w", o.Name, err)
			}
			o.Values = append(o.Values, frames...)
			o.Shapes = append(o.Shapes, t.Shape)
		}
		result.Outputs = append(result.Outputs, o)
	}
	return result, nil
}
