package cmd

import (
	"net/http"

	"github.com/Samsany/comfyui-xdesign-nodes/handler"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the node registry over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		utils.Logger.Info("starting xdesign node server",
			zap.String("version", build.Version),
			zap.String("build_time", build.BuildTime),
			zap.String("git_commit", build.GitCommit),
			zap.String("git_branch", build.GitBranch))

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		r := handler.NewRouter(cfg.Server.Mode, handler.NewNodeHandler(a.registry, a.encoder), build)
		srv := &http.Server{
			Addr:         cfg.Server.Port,
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		// 启动服务器
		utils.Logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Error("failed to start server", zap.Error(err))
			return err
		}
		return nil
	},
}
