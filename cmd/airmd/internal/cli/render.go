package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	airmd "github.com/goliatone/go-airmd"
	"github.com/goliatone/go-airmd/internal/commands"
	rendercmd "github.com/goliatone/go-airmd/internal/commands/render"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

type renderFlags struct {
	flavor    string
	out       string
	pattern   string
	recursive bool
}

func newRenderCommand(configPath *string) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render a Markdown file or directory to HTML",
		Long: `Render converts a Markdown file, or every matching file under a directory,
into HTML. The flavor comes from --flavor, then the document front matter,
then the configured default.

Examples:
  airmd render guide.md
  airmd render guide.md --flavor live --out guide.html
  airmd render content --out public`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			var recursive *bool
			if cmd.Flags().Changed("recursive") {
				recursive = &flags.recursive
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], flags, recursive)
		},
	}
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Flavor override (standard, prose, live, highlighted)")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output file, or output directory when rendering a directory (default: stdout)")
	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "Glob applied when rendering a directory")
	cmd.Flags().BoolVar(&flags.recursive, "recursive", true, "Walk sub-directories when rendering a directory")
	return cmd
}

func runRender(ctx context.Context, stdout io.Writer, cfg airmd.Config, target string, flags *renderFlags, recursive *bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("render %s: %w", target, err)
	}

	module, err := airmd.NewModule(cfg)
	if err != nil {
		return fmt.Errorf("configure airmd: %w", err)
	}

	base, name := target, "."
	if !info.IsDir() {
		base, name = filepath.Dir(target), filepath.Base(target)
	}
	documents, err := module.Documents(base)
	if err != nil {
		return err
	}

	sink := stdoutSink(stdout)
	if out := strings.TrimSpace(flags.out); out != "" {
		if info.IsDir() {
			sink = directorySink(out)
		} else {
			sink = fileSink(out)
		}
	}

	handlers, err := rendercmd.RegisterRenderCommands(nil, documents.Loader(), documents, sink, module.LoggerProvider(),
		rendercmd.WithFileHandlerOptions(commands.WithTimeout[rendercmd.RenderFileCommand](cfg.Commands.Timeout)),
		rendercmd.WithDirectoryHandlerOptions(commands.WithTimeout[rendercmd.RenderDirectoryCommand](cfg.Commands.Timeout)),
	)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return handlers.File.Execute(ctx, rendercmd.RenderFileCommand{Path: name, Flavor: flags.flavor})
	}
	return handlers.Directory.Execute(ctx, rendercmd.RenderDirectoryCommand{
		Directory: name,
		Flavor:    flags.flavor,
		Pattern:   flags.pattern,
		Recursive: recursive,
	})
}

func stdoutSink(w io.Writer) rendercmd.Sink {
	return func(_ context.Context, doc *interfaces.Document) error {
		html := string(doc.BodyHTML)
		if !strings.HasSuffix(html, "\n") {
			html += "\n"
		}
		_, err := io.WriteString(w, html)
		return err
	}
}

func fileSink(path string) rendercmd.Sink {
	return func(_ context.Context, doc *interfaces.Document) error {
		return writeFile(path, doc.BodyHTML)
	}
}

// directorySink mirrors the source tree under root, swapping the extension
// for .html.
func directorySink(root string) rendercmd.Sink {
	return func(_ context.Context, doc *interfaces.Document) error {
		rel := filepath.FromSlash(doc.FilePath)
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
		return writeFile(filepath.Join(root, rel), doc.BodyHTML)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
