/*
animaconv converts glTF character scenes into engine ready
.ceasset files and inspects the result
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spaghettifunk/animaconv/engine"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	outputPath string
	outputDir  string
	texture    string
	flipY      bool
	jobs       int
)

func main() {
	cmd := &cobra.Command{
		Use:   "animaconv",
		Short: "Character asset converter",
		Long: `animaconv - Character asset converter

Converts skinned glTF scenes (meshes, skeleton, animations) into the
binary .ceasset layout loaded by the engine at runtime.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	convertCmd := &cobra.Command{
		Use:   "convert <scene.gltf|scene.glb>...",
		Short: "Convert scenes into character assets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && outputPath != "" {
				return fmt.Errorf("--output needs a single scene, got %d", len(args))
			}
			c, err := newConverter(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				report, err := c.Convert(cmd.Context(), args[0], outputPath)
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			}
			reports, err := c.ConvertAll(cmd.Context(), args, jobs)
			for _, report := range reports {
				if report != nil {
					printReport(cmd, report)
				}
			}
			return err
		},
	}
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output asset path")
	convertCmd.Flags().StringVar(&texture, "texture", "", "Texture image to embed (PNG/JPG/TGA/BMP/TIFF)")
	convertCmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Scenes converted in parallel")
	convertCmd.Flags().BoolVar(&flipY, "flip-texture-y", false, "Flip the embedded texture vertically")

	inspectCmd := &cobra.Command{
		Use:   "inspect <asset.ceasset>",
		Short: "Describe a converted asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConverter(cmd)
			if err != nil {
				return err
			}
			summary, err := c.Inspect(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert scenes whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConverter(cmd)
			if err != nil {
				return err
			}
			return c.Watch(cmd.Context(), args[0])
		},
	}
	watchCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for converted assets")

	cmd.AddCommand(convertCmd, inspectCmd, watchCmd)

	// signal context to stop the watcher on system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := fang.Execute(ctx, cmd); err != nil {
		stop()
		os.Exit(1)
	}
}

// newConverter loads the config file and applies the flags set on cmd over it.
func newConverter(cmd *cobra.Command) (*engine.Converter, error) {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("texture") {
		cfg.Export.Texture = texture
	}
	if flags.Changed("flip-texture-y") {
		cfg.Export.FlipTextureY = flipY
	}
	if flags.Changed("output-dir") {
		cfg.Export.OutputDir = outputDir
	}
	return engine.New(cfg)
}

func printReport(cmd *cobra.Command, report *engine.Report) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", report.Source, report.Output)
	fmt.Fprint(cmd.OutOrStdout(), report.Summary)
	if report.Diagnostics.Total() > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "diagnostics: %s\n", report.Diagnostics.Summary())
	}
}
