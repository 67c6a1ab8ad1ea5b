package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

const sampleDocument = `---
title: Sample Document
slug: sample-document
summary: Sample summary goes here
flavor: Prose
tags:
  - docs
  - markdown
custom_flag: true
---
# Sample Document

Body text.
`

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Sample Document" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "sample-document" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if fm.Flavor != "prose" {
		t.Fatalf("expected flavor to be normalised to prose, got %q", fm.Flavor)
	}
	if diff := cmp.Diff([]string{"docs", "markdown"}, fm.Tags); diff != "" {
		t.Fatalf("FrontMatter Tags mismatch (-want +got):\n%s", diff)
	}
	if fm.Custom["custom_flag"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", fm.Custom)
	}
	if fm.Raw["summary"] != "Sample summary goes here" {
		t.Fatalf("FrontMatter Raw summary missing: %#v", fm.Raw)
	}
	if !strings.Contains(string(body), "# Sample Document") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterWithoutHeader(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("# Plain\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" || fm.Flavor != "" {
		t.Fatalf("expected empty metadata, got %#v", fm)
	}
	if string(body) != "# Plain\n" {
		t.Fatalf("expected body unchanged, got %q", string(body))
	}
}

func TestBuildDocument(t *testing.T) {
	modified := time.Now().UTC()

	doc, err := BuildDocument("docs/sample.md", []byte(sampleDocument), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "docs/sample.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected BodyHTML to be rendered lazily")
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Hello, world"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := string(html); got != "<h1>Hello, world</h1>\n" {
		t.Fatalf("unexpected HTML %q", got)
	}
}

func TestGoldmarkParser_StandardCodeBlock(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Code Example\n\n```python\nfor i in range(5):\n    print(i)\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := "<h1>Code Example</h1>\n<pre><code class=\"language-python\">for i in range(5):\n    print(i)\n</code></pre>\n"
	if got := string(html); got != want {
		t.Fatalf("unexpected HTML (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

type supermanStrong struct{}

func (supermanStrong) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindEmphasis, func(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		tag := "em"
		if node.(*ast.Emphasis).Level == 2 {
			tag = "strong"
		}
		if entering {
			if tag == "strong" {
				_, _ = w.WriteString(`<strong class="superman">`)
			} else {
				_, _ = w.WriteString("<em>")
			}
		} else {
			_, _ = w.WriteString("</" + tag + ">")
		}
		return ast.WalkContinue, nil
	})
}

func TestGoldmarkParser_CustomNodeRenderer(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{}, WithNodeRenderer(supermanStrong{}, 100))

	html, err := parser.Parse([]byte("**Hello, World**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := string(html); got != "<p><strong class=\"superman\">Hello, World</strong></p>\n" {
		t.Fatalf("unexpected HTML %q", got)
	}
}

func TestGoldmarkParser_HeadingIDs(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{HeadingIDs: true})

	html, err := parser.Parse([]byte("# Hello World\n\n## Hello World\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `<h1 id="hello-world">`) {
		t.Fatalf("expected slug id on first heading, got %q", got)
	}
	if !strings.Contains(got, `<h2 id="hello-world-1">`) {
		t.Fatalf("expected de-duplicated id on second heading, got %q", got)
	}
}

func TestGoldmarkParser_Sanitize(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("<script>alert(1)</script>\n\n[x](javascript:alert(1)) hi"), interfaces.ParseOptions{
		Sanitize: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	got := string(html)
	if strings.Contains(got, "script") || strings.Contains(got, "javascript:") {
		t.Fatalf("expected unsafe markup to be removed, got %q", got)
	}
	if !strings.Contains(got, "hi") {
		t.Fatalf("expected text to survive sanitising, got %q", got)
	}
}

func TestGoldmarkParser_UnsafeHTMLAllowedByDefault(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("<div class=\"note\">hi</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), `<div class="note">hi</div>`) {
		t.Fatalf("expected raw HTML passthrough, got %q", string(html))
	}
}

func TestGoldmarkParser_HighlightExtender(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{}, WithExtenders(HighlightExtender(HighlightOptions{Classes: true})))

	html, err := parser.Parse([]byte("```go\nfunc main() {}\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "chroma") {
		t.Fatalf("expected chroma markup, got %q", string(html))
	}
}

func TestCollectExtensionsIgnoresUnknown(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "nope", " footnote "})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
}

func TestSanitizerKeepsClasses(t *testing.T) {
	got := NewSanitizer().Sanitize(`<pre><code class="language-go">x</code></pre><script>alert(1)</script>`)
	if got != `<pre><code class="language-go">x</code></pre>` {
		t.Fatalf("unexpected sanitised markup %q", got)
	}
}
