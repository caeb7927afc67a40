package main

import (
	"github.com/Samsany/comfyui-xdesign-nodes/cmd"
	"github.com/Samsany/comfyui-xdesign-nodes/handler"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	BuildID   = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

func main() {
	cmd.Execute(handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		BuildID:   BuildID,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
	})
}
