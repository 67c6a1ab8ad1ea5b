package airmd

import "sync"

var (
	defaultOnce   sync.Once
	defaultModule *Module
)

// Default returns the module built from DefaultConfig on first use.
func Default() *Module {
	defaultOnce.Do(func() {
		m, err := NewModule(DefaultConfig())
		if err != nil {
			panic("airmd: default config rejected: " + err.Error())
		}
		defaultModule = m
	})
	return defaultModule
}

// NewMarkdown builds a standard Markdown node.
func NewMarkdown(content string) *Node {
	return Default().Standard().New(content)
}

// NewProseMarkdown builds a node wrapped for Tailwind typography.
func NewProseMarkdown(content string) *Node {
	return Default().Prose().New(content)
}

// NewAirMarkdown builds a node whose air-live blocks are executed.
func NewAirMarkdown(content string) *Node {
	return Default().Live().New(content)
}

// RenderLiveBlock evaluates code with the default module's live renderer.
func RenderLiveBlock(code string) string {
	return Default().RenderLiveBlock(code)
}
