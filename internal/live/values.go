package live

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/goliatone/go-airmd/pkg/air"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// componentValue exposes an interfaces.Component to scripts. It supports a
// single method, render(), returning the component HTML as a string.
type componentValue struct {
	name      string
	component interfaces.Component
}

var (
	_ starlark.Value    = (*componentValue)(nil)
	_ starlark.HasAttrs = (*componentValue)(nil)
)

func newComponentValue(name string, component interfaces.Component) *componentValue {
	return &componentValue{name: name, component: component}
}

func (v *componentValue) String() string        { return fmt.Sprintf("<component %s>", v.name) }
func (v *componentValue) Type() string          { return "component" }
func (v *componentValue) Freeze()               {}
func (v *componentValue) Truth() starlark.Bool  { return starlark.True }
func (v *componentValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: component") }

func (v *componentValue) Attr(name string) (starlark.Value, error) {
	if name != "render" {
		return nil, nil
	}
	return starlark.NewBuiltin("render", renderMethod).BindReceiver(v), nil
}

func (v *componentValue) AttrNames() []string {
	return []string{"render"}
}

func renderMethod(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	recv := b.Receiver().(*componentValue)
	html, err := recv.component.Render()
	if err != nil {
		return nil, fmt.Errorf("%s.render: %w", recv.name, err)
	}
	return starlark.String(html), nil
}

// asComponent reports the component carried by a script value, if any.
func asComponent(value starlark.Value) (interfaces.Component, bool) {
	v, ok := value.(*componentValue)
	if !ok || v.component == nil {
		return nil, false
	}
	return v.component, true
}

// asComponentSequence splices a non-empty list or tuple made only of
// components into one fragment. Mixed sequences are not components.
func asComponentSequence(value starlark.Value) (interfaces.Component, bool) {
	seq, ok := value.(starlark.Indexable)
	if !ok || seq.Len() == 0 {
		return nil, false
	}
	switch value.(type) {
	case *starlark.List, starlark.Tuple:
	default:
		return nil, false
	}
	children := make([]any, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		component, ok := asComponent(seq.Index(i))
		if !ok {
			return nil, false
		}
		children = append(children, component)
	}
	return air.Children(children...), true
}

// namespace builds the module value (air by default) holding one builtin per
// component factory.
func namespace(name string, factories map[string]interfaces.ComponentFactory) *starlarkstruct.Module {
	members := make(starlark.StringDict, len(factories))
	names := make([]string, 0, len(factories))
	for key := range factories {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		members[key] = factoryBuiltin(name+"."+key, factories[key])
	}
	return &starlarkstruct.Module{Name: name, Members: members}
}

func factoryBuiltin(name string, factory interfaces.ComponentFactory) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		goArgs := make([]any, 0, len(args))
		for _, arg := range args {
			goArgs = append(goArgs, toGo(arg))
		}
		attrs := make(map[string]any, len(kwargs))
		for _, kv := range kwargs {
			key, _ := starlark.AsString(kv[0])
			attrs[key] = toGo(kv[1])
		}
		component, err := factory(goArgs, attrs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return newComponentValue(b.Name(), component), nil
	})
}

// toGo converts script values into the plain Go values component factories
// accept.
func toGo(value starlark.Value) any {
	switch v := value.(type) {
	case starlark.NoneType:
		return nil
	case starlark.String:
		return string(v)
	case starlark.Bool:
		return bool(v)
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i
		}
		return v.String()
	case starlark.Float:
		return float64(v)
	case *componentValue:
		return v.component
	case *starlark.List:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, toGo(v.Index(i)))
		}
		return out
	case starlark.Tuple:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, toGo(item))
		}
		return out
	default:
		return value.String()
	}
}

// textOf renders a non-component value the way str() would.
func textOf(value starlark.Value) string {
	if s, ok := starlark.AsString(value); ok {
		return s
	}
	return value.String()
}
