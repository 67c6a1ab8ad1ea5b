package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderFileToStdout(t *testing.T) {
	root := writeTree(t, map[string]string{"guide.md": "# Guide\n"})

	out, err := run(t, "render", filepath.Join(root, "guide.md"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h1>Guide</h1>\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderFileFlavorOverride(t *testing.T) {
	root := writeTree(t, map[string]string{"guide.md": "# Guide\n"})

	out, err := run(t, "render", filepath.Join(root, "guide.md"), "--flavor", "prose")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<article class="prose"><h1>Guide</h1>` + "\n" + "</article>\n"
	if out != want {
		t.Fatalf("unexpected output:\nwant %q\ngot  %q", want, out)
	}
}

func TestRenderLiveDocumentFromFrontMatter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"live.md": "---\nflavor: live\n---\n```air-live\nprint(\"<h2>Hi</h2>\")\n```\n",
	})

	out, err := run(t, "render", filepath.Join(root, "live.md"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h2>Hi</h2>") || !strings.HasPrefix(out, `<article class="prose">`) {
		t.Fatalf("expected executed live block, got %q", out)
	}
}

func TestRenderRejectsUnknownFlavor(t *testing.T) {
	root := writeTree(t, map[string]string{"guide.md": "# Guide\n"})

	if _, err := run(t, "render", filepath.Join(root, "guide.md"), "--flavor", "fancy"); err == nil {
		t.Fatal("expected unknown flavor error")
	}
}

func TestRenderMissingPath(t *testing.T) {
	if _, err := run(t, "render", filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatal("expected missing path error")
	}
}

func TestRenderFileToOut(t *testing.T) {
	root := writeTree(t, map[string]string{"guide.md": "# Guide\n"})
	target := filepath.Join(root, "public", "guide.html")

	out, err := run(t, "render", filepath.Join(root, "guide.md"), "--out", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<h1>Guide</h1>\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestRenderDirectoryToOut(t *testing.T) {
	root := writeTree(t, map[string]string{
		"content/index.md":      "# Home\n",
		"content/notes/todo.md": "# Todo\n",
	})
	public := filepath.Join(root, "public")

	if _, err := run(t, "render", filepath.Join(root, "content"), "--out", public); err != nil {
		t.Fatalf("render: %v", err)
	}
	for name, want := range map[string]string{
		"index.html":      "<h1>Home</h1>\n",
		"notes/todo.html": "<h1>Todo</h1>\n",
	} {
		data, err := os.ReadFile(filepath.Join(public, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != want {
			t.Fatalf("%s: unexpected contents %q", name, data)
		}
	}
}

func TestRenderDirectoryNonRecursive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.md":      "# Home\n",
		"notes/todo.md": "# Todo\n",
	})

	out, err := run(t, "render", root, "--recursive=false")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h1>Home</h1>\n" {
		t.Fatalf("expected root document only, got %q", out)
	}
}

func TestRenderUsesConfigFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"guide.md": "# Guide\n",
		"airmd.yaml": "documents:\n  default_flavor: prose\nparser:\n  heading_ids: true\n",
	})

	out, err := run(t, "--config", filepath.Join(root, "airmd.yaml"), "render", filepath.Join(root, "guide.md"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<article class="prose"><h1 id="guide">Guide</h1>` + "\n" + "</article>\n"
	if out != want {
		t.Fatalf("unexpected output:\nwant %q\ngot  %q", want, out)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if !cfg.Live.Enabled {
		t.Fatal("expected live blocks enabled by default")
	}

	root := writeTree(t, map[string]string{
		"airmd.yaml": "live:\n  enabled: false\ncommands:\n  timeout: 5s\nhighlight:\n  enabled: true\n",
	})
	cfg, err = LoadConfig(filepath.Join(root, "airmd.yaml"))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Live.Enabled {
		t.Fatal("expected live disabled from file")
	}
	if cfg.Commands.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Commands.Timeout)
	}
	if !cfg.Highlight.Enabled || cfg.Highlight.Style != "github" {
		t.Fatalf("expected defaults preserved alongside overrides, got %+v", cfg.Highlight)
	}

	if _, err := LoadConfig(filepath.Join(root, "missing.yaml")); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.yaml": "live: [\n"})
	if _, err := LoadConfig(filepath.Join(root, "bad.yaml")); err == nil {
		t.Fatal("expected decode error")
	}
}
