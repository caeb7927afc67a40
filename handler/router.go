package handler

import (
	"github.com/Samsany/comfyui-xdesign-nodes/middleware"
	"github.com/gin-gonic/gin"
)

// BuildInfo 版本信息
type BuildInfo struct {
	Version   string
	BuildTime string
	BuildID   string
	GitCommit string
	GitBranch string
}

// NewRouter 创建路由
func NewRouter(mode string, nodes *NodeHandler, build BuildInfo) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.InvocationID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// 健康检查和版本信息
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": build.Version,
		})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    build.Version,
			"build_time": build.BuildTime,
			"build_id":   build.BuildID,
			"git_commit": build.GitCommit,
			"git_branch": build.GitBranch,
		})
	})

	// API路由
	api := r.Group("/api/v1")
	{
		api.GET("/nodes", nodes.List)
		api.POST("/nodes/:kind", nodes.Invoke)
	}

	return r
}
