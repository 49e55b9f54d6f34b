package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/export"
	"github.com/MrSnakeDoc/forge/internal/utils"
)

var (
	exportConfigPath  string
	exportPreset      string
	exportPresetsFile string
	exportOutDir      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the plugin archive of a configuration file",
	Long: `Builds the WordPress plugin of a YAML configuration file offline and
writes it as <slug>.zip.

Example:
  forge export --config launch.yaml --preset dark --out dist/`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportConfigPath, "config", "c", "", "configuration file (YAML)")
	exportCmd.Flags().StringVarP(&exportPreset, "preset", "p", "", "preset laid over the configuration")
	exportCmd.Flags().StringVar(&exportPresetsFile, "presets", os.Getenv("FORGE_PRESET_FILE"), "presets file completing the built-in presets")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "output directory")
	_ = exportCmd.MarkFlagRequired("config")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfiguration(ctx, exportConfigPath, exportPreset, exportPresetsFile)
	if err != nil {
		return err
	}

	res, err := export.NewService(nil, nil, cliLogger, 0).Export(ctx, cfg)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return fmt.Errorf("%s (%w)", export.NoticeOf(err), err)
	}

	path, err := writeArchive(exportOutDir, res)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s (%d bytes, fingerprint %s)\n", path, len(res.Data), res.Fingerprint[:12])
	return nil
}

func writeArchive(dir string, res *export.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, res.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer utils.MustClose(f, cliLogger)

	if _, err := f.Write(res.Data); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	return path, nil
}
