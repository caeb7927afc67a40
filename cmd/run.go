package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Samsany/comfyui-xdesign-nodes/model"
	"github.com/Samsany/comfyui-xdesign-nodes/service"
	"github.com/spf13/cobra"
)

var (
	runParams []string
	runOutDir string
)

var runCmd = &cobra.Command{
	Use:   "run <kind>",
	Short: "Invoke a node once and write its outputs",
	Long: `Invoke a node once. Parameters are passed as --param name=value; IMAGE
parameters take a path to an image file. IMAGE and MASK outputs are written as
PNG files into --out, STRING outputs are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		kind := args[0]
		n, ok := a.registry.Lookup(kind)
		if !ok {
			return fmt.Errorf("%w: %s", service.ErrUnknownNode, kind)
		}
		params, err := parseParams(n.Spec(), runParams)
		if err != nil {
			return err
		}

		outputs, err := a.registry.Invoke(cmd.Context(), kind, params)
		if err != nil {
			return err
		}
		return writeOutputs(cmd, a.encoder, n.Spec(), outputs, runOutDir)
	},
}

func init() {
	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "node parameter as name=value (repeatable)")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", ".", "directory for image and mask outputs")
}

// parseParams 解析 name=value 参数，IMAGE 参数读取本地文件
func parseParams(spec service.NodeSpec, raw []string) (map[string]any, error) {
	types := make(map[string]service.ParamType, len(spec.Inputs))
	for _, p := range spec.Inputs {
		types[p.Name] = p.Type
	}

	params := make(map[string]any, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=value", service.ErrInvalidParam, kv)
		}
		if types[name] != service.TypeImage {
			params[name] = strings.ReplaceAll(value, `\n`, "\n")
			continue
		}

		img, err := service.OpenImage(value)
		if err != nil {
			return nil, err
		}
		rgb, _ := service.SplitComponents(img, false)
		params[name] = service.ImageToTensor(rgb)
	}
	return params, nil
}

func writeOutputs(cmd *cobra.Command, enc *service.Encoder, spec service.NodeSpec, outputs []any, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, out := range outputs {
		name := fmt.Sprintf("output%d", i)
		if i < len(spec.Outputs) {
			name = spec.Outputs[i].Name
		}

		var tensors []*model.Tensor
		switch v := out.(type) {
		case string:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, v)
			continue
		case *model.Tensor:
			tensors = []*model.Tensor{v}
		case []*model.Tensor:
			tensors = v
		}

		index := 0
		for _, t := range tensors {
			for f := 0; f < t.Batch(); f++ {
				frame, err := t.Frame(f)
				if err != nil {
					return err
				}
				data, err := enc.EncodeImage(frame, "PNG")
				if err != nil {
					return err
				}
				path := filepath.Join(dir, fmt.Sprintf("%s_%02d.png", name, index))
				if err := os.WriteFile(path, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %v\n", name, path, frame.Shape)
				index++
			}
		}
	}
	return nil
}
