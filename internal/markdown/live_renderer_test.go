package markdown

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-airmd/internal/live"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

type stubEvaluator struct {
	calls  []string
	result interfaces.LiveResult
}

func (s *stubEvaluator) Evaluate(code string) interfaces.LiveResult {
	s.calls = append(s.calls, code)
	return s.result
}

type failureCounter struct {
	languages []string
}

func (f *failureCounter) ObserveEvaluation(interfaces.LiveOutcome, time.Duration) {}
func (f *failureCounter) IncrementFailure(language string) {
	f.languages = append(f.languages, language)
}

func liveParser(r *LiveBlockRenderer) *GoldmarkParser {
	return NewGoldmarkParser(interfaces.ParseOptions{}, WithNodeRenderer(r, LivePriority))
}

func TestLiveBlockRenderer_Component(t *testing.T) {
	parser := liveParser(NewLiveBlockRenderer(live.NewEvaluator()))

	html, err := parser.Parse([]byte("# Title\n\n```air-live\nair.H2(\"Test\")\n```\n\nafter\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := "<h1>Title</h1>\n<h2>Test</h2>\n<p>after</p>\n"
	if got := string(html); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLiveBlockRenderer_PrintOutput(t *testing.T) {
	parser := liveParser(NewLiveBlockRenderer(live.NewEvaluator()))

	html, err := parser.Parse([]byte("```air-live\nprint(air.H2(\"Test\").render())\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := string(html); got != "<h2>Test</h2>\n\n" {
		t.Fatalf("unexpected HTML %q", got)
	}
}

func TestLiveBlockRenderer_StatementsOnly(t *testing.T) {
	parser := liveParser(NewLiveBlockRenderer(live.NewEvaluator()))

	html, err := parser.Parse([]byte("```air-live\nx = \"Hello\"\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(html) != 0 {
		t.Fatalf("expected empty output, got %q", string(html))
	}
}

func TestLiveBlockRenderer_ErrorFragment(t *testing.T) {
	metrics := &failureCounter{}
	parser := liveParser(NewLiveBlockRenderer(live.NewEvaluator(), WithLiveMetrics(metrics)))

	html, err := parser.Parse([]byte("```air-live\nair.H2(\"Test\"\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.HasPrefix(got, `<pre><code class="language-air-live-error">air.H2(&quot;Test&quot;`) {
		t.Fatalf("expected escaped source in error fragment, got %q", got)
	}
	if !strings.Contains(got, "Error rendering air-live block: ") {
		t.Fatalf("expected error message, got %q", got)
	}
	if len(metrics.languages) != 1 || metrics.languages[0] != DefaultLiveLanguage {
		t.Fatalf("expected one failure for %s, got %v", DefaultLiveLanguage, metrics.languages)
	}
}

func TestLiveBlockRenderer_LegacyAliasAndCustomLanguages(t *testing.T) {
	stub := &stubEvaluator{result: interfaces.LiveResult{Outcome: interfaces.LiveOutcomeValue, HTML: "ok"}}

	html, err := liveParser(NewLiveBlockRenderer(stub)).Parse([]byte("```airtag_rendered\n1\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(html) != "ok\n" {
		t.Fatalf("expected legacy alias to execute, got %q", string(html))
	}

	custom := NewLiveBlockRenderer(stub, WithLanguages("run"))
	if custom.IsLive(DefaultLiveLanguage) || !custom.IsLive("run") {
		t.Fatalf("expected custom languages to replace defaults")
	}
}

func TestLiveBlockRenderer_NonLiveBlocksAreNotExecuted(t *testing.T) {
	stub := &stubEvaluator{}
	parser := liveParser(NewLiveBlockRenderer(stub))

	html, err := parser.Parse([]byte("```python\nprint(\"<x>\")\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(stub.calls) != 0 {
		t.Fatalf("expected python block to be left alone, evaluated %v", stub.calls)
	}
	want := "<pre><code class=\"language-python\">print(&quot;&lt;x&gt;&quot;)\n</code></pre>\n"
	if string(html) != want {
		t.Fatalf("expected %q, got %q", want, string(html))
	}
}

func TestLiveBlockRenderer_HighlightFallback(t *testing.T) {
	r := NewLiveBlockRenderer(live.NewEvaluator(), WithFallback(HighlightFallback(HighlightOptions{Classes: true})))

	html, err := liveParser(r).Parse([]byte("```go\nfunc main() {}\n```\n\n```air-live\nair.P(\"hi\")\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "chroma") {
		t.Fatalf("expected highlighted go block, got %q", got)
	}
	if !strings.HasSuffix(got, "<p>hi</p>\n") {
		t.Fatalf("expected live block output after highlighted block, got %q", got)
	}
}

func TestRenderLiveBlock(t *testing.T) {
	r := NewLiveBlockRenderer(live.NewEvaluator())

	if got := r.RenderLiveBlock(`air.H2("Test")`); got != "<h2>Test</h2>" {
		t.Fatalf("unexpected fragment %q", got)
	}
	if got := r.RenderLiveBlock("   \n"); got != "" {
		t.Fatalf("expected empty fragment, got %q", got)
	}
	if got := r.RenderLiveBlock(`air.H2("Test"`); !strings.Contains(got, "Error rendering air-live block") {
		t.Fatalf("expected error fragment, got %q", got)
	}
}

func TestErrorFragmentEscapes(t *testing.T) {
	got := ErrorFragment("", `"<a>"`, errors.New("bad & worse"))
	want := `<pre><code class="language-air-live-error">&quot;&lt;a&gt;&quot;` + "\n\n" + `Error rendering air-live block: bad &amp; worse</code></pre>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCodeBlockFragment(t *testing.T) {
	if got := CodeBlockFragment("", "a < b\n"); got != "<pre><code>a &lt; b\n</code></pre>\n" {
		t.Fatalf("unexpected untagged fragment %q", got)
	}
	if got := CodeBlockFragment(`x"y`, "'q'"); got != "<pre><code class=\"language-x&quot;y\">&#39;q&#39;</code></pre>\n" {
		t.Fatalf("unexpected tagged fragment %q", got)
	}
}

func TestNewLiveBlockRendererPanicsWithoutEvaluator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil evaluator")
		}
	}()
	NewLiveBlockRenderer(nil)
}
