package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/server"
	"github.com/deltafood/delta/internal/ui"
)

var (
	exportOut     string
	exportContent string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a static copy of the page",
	Long: `Render the full page with its initial state to index.html and copy the
stylesheet and client script next to it. The exported page has no live
session: the slider, lightbox and forms stay in their initial state.

Examples:
  delta export                           # Write to ./dist
  delta export --out public --content content.yml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dist", "Output directory")
	exportCmd.Flags().StringVarP(&exportContent, "content", "c", "", "Content catalog file (default is the configured catalog)")
	AddFlagValidation(exportCmd, "content", ValidateFileExists)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	path := cfg.Content.Path
	if exportContent != "" {
		path = exportContent
	}

	op := logger.StartOperation("export")
	ctx := cmd.Context()

	catalog, err := content.Load(path)
	if err != nil {
		op.EndWithError(ctx, err)
		return fmt.Errorf("failed to load content: %w", err)
	}

	files, err := exportSite(cmd, catalog, cfg.Carousel.WidePageSize, exportOut)
	if err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", files, exportOut)
	return nil
}

// exportSite writes index.html and the static assets under out and returns
// the number of files written.
func exportSite(cmd *cobra.Command, catalog *content.Catalog, pageSize int, out string) (int, error) {
	if err := os.MkdirAll(out, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", out, err)
	}

	page, err := ui.RenderString(cmd.Context(), ui.Page(ui.NewView(catalog, pageSize), ui.DefaultRegistry()))
	if err != nil {
		return 0, fmt.Errorf("failed to render page: %w", err)
	}
	if err := os.WriteFile(filepath.Join(out, "index.html"), []byte(page), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write index.html: %w", err)
	}
	files := 1

	assets := server.StaticFS()
	err = fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(out, "static", filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := copyAsset(assets, name, target); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to copy assets: %w", err)
	}
	return files, nil
}

func copyAsset(assets fs.FS, name, target string) error {
	src, err := assets.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
