package cmd

import (
	"fmt"
	"os"

	"github.com/Samsany/comfyui-xdesign-nodes/config"
	"github.com/Samsany/comfyui-xdesign-nodes/handler"
	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"github.com/spf13/cobra"
)

var (
	configPath string
	build      handler.BuildInfo
)

var rootCmd = &cobra.Command{
	Use:           "xdesign",
	Short:         "X-Design image loader nodes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, nodesCmd, runCmd)
}

// loadConfig 加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	cfg := config.NewFromPath(configPath)
	if err := utils.InitLogger(cfg.Server.Mode, cfg.Server.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// Execute 执行命令行
func Execute(info handler.BuildInfo) {
	build = info
	rootCmd.Version = info.Version
	defer utils.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		utils.Sync()
		os.Exit(1)
	}
}
