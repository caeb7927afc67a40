package middleware

import (
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"github.com/gin-gonic/gin"
)

const (
	InvocationIDKey    = "invocation_id"
	InvocationIDHeader = "X-Invocation-ID"
)

// InvocationID 为每个请求分配调用ID，客户端可通过请求头指定
func InvocationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(InvocationIDHeader)
		if id == "" {
			id = utils.GenerateID()
		}
		c.Set(InvocationIDKey, id)
		c.Header(InvocationIDHeader, id)
		c.Next()
	}
}
