package interfaces

// Component is anything exposing the render contract: a tag, a Markdown node
// or a raw fragment. Values implementing Component returned from a live block
// are spliced into the document as their rendered HTML.
type Component interface {
	Render() (string, error)
}

// ComponentFactory builds a component from positional arguments and keyword
// attributes. Arguments arrive as plain Go values: string, int64, float64,
// bool, nil, []any or Component.
type ComponentFactory func(args []any, attrs map[string]any) (Component, error)
