package markdown

import (
	"strings"
)

const (
	// DefaultLiveLanguage tags fenced blocks whose source is executed.
	DefaultLiveLanguage = "air-live"
	// LegacyLiveLanguage is accepted as an alias of DefaultLiveLanguage.
	LegacyLiveLanguage = "airtag_rendered"
	// DefaultErrorClass is the class carried by failed live blocks.
	DefaultErrorClass = "language-air-live-error"
	// ErrorMessagePrefix precedes the failure message inside an error fragment.
	ErrorMessagePrefix = "Error rendering air-live block"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for inclusion in element content or attribute
// values.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// CodeBlockFragment renders a fenced code block the way the standard renderer
// does: the tag becomes a language-{tag} class and the content is escaped.
// A block without a tag gets a bare code element.
func CodeBlockFragment(language, content string) string {
	var b strings.Builder
	b.WriteString("<pre><code")
	if language != "" {
		b.WriteString(` class="language-`)
		b.WriteString(EscapeHTML(language))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(EscapeHTML(content))
	b.WriteString("</code></pre>\n")
	return b.String()
}

// ErrorFragment renders the source of a failed live block followed by a blank
// line and the failure message, escaped, inside a code element carrying
// errorClass.
func ErrorFragment(errorClass, code string, err error) string {
	if errorClass == "" {
		errorClass = DefaultErrorClass
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	var b strings.Builder
	b.WriteString(`<pre><code class="`)
	b.WriteString(EscapeHTML(errorClass))
	b.WriteString(`">`)
	b.WriteString(EscapeHTML(code + "\n\n" + ErrorMessagePrefix + ": " + msg))
	b.WriteString("</code></pre>")
	return b.String()
}
