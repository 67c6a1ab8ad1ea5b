package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// ErrNilDocument is returned when a nil document is handed to RenderDocument.
var ErrNilDocument = errors.New("markdown service: document is nil")

// Config controls how the Markdown service discovers and renders files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
	Logger    interfaces.Logger
}

// RenderFunc turns a loaded document into HTML.
type RenderFunc func(ctx context.Context, doc *interfaces.Document) ([]byte, error)

// ParserRenderFunc renders every document body through parser.
func ParserRenderFunc(parser interfaces.MarkdownParser) RenderFunc {
	return func(ctx context.Context, doc *interfaces.Document) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return parser.Parse(doc.Body)
	}
}

// Service loads filesystem-backed documents and renders them with a
// RenderFunc, typically one choosing a flavor from the document front matter.
type Service struct {
	cfg    Config
	render RenderFunc
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a Markdown service reading from cfg.BasePath. When
// render is nil, a Goldmark parser with the configured options is used.
func NewService(cfg Config, render RenderFunc) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceFS(filesystem, cfg, render), nil
}

// NewServiceFS constructs a Markdown service over an arbitrary filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, render RenderFunc) *Service {
	if render == nil {
		render = ParserRenderFunc(NewGoldmarkParser(cfg.Parser))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		render: render,
		loader: loader,
		logger: logger,
	}
}

// Load reads and renders a single Markdown document relative to the
// configured base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	if _, err := s.RenderDocument(ctx, result.Document); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads and renders every Markdown document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), opts)
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if _, err := s.RenderDocument(ctx, result.Document); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// RenderDocument converts the document's Markdown body into HTML and stores
// it on BodyHTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := logging.WithRenderContext(s.logger, doc.FilePath, doc.FrontMatter.Flavor, "")
	html, err := s.render(ctx, doc)
	if err != nil {
		logger.Error("markdown.document.render_failed", "error", err)
		return nil, fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	logger.Debug("markdown.document.rendered", "bytes", len(html))
	return html, nil
}

// Loader exposes the loader backing the service, for callers that read
// documents without rendering them.
func (s *Service) Loader() *Loader {
	return s.loader
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
