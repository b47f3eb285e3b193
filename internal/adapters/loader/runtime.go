package loader

import (
	"fmt"
	"reflect"

	"github.com/dop251/goja"
	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

// hookFrame holds the per-component hook slots that persist across renders.
// The cursor resets at the start of every render so hooks resolve to the
// same slot each time, which requires stable hook call order in the
// component body.
type hookFrame struct {
	slots  []any
	cursor int
	dirty  bool
}

func (f *hookFrame) reset() {
	f.cursor = 0
	f.dirty = false
}

func (f *hookFrame) next() int {
	idx := f.cursor
	f.cursor++
	if idx >= len(f.slots) {
		f.slots = append(f.slots, nil)
	}
	return idx
}

type memoSlot struct {
	deps  []any
	value goja.Value
}

type effectSlot struct {
	deps []any
}

type refSlot struct {
	obj *goja.Object
}

// frameworkModule builds the shared ui-runtime module object: the h factory,
// the Fragment sentinel, and the hook set. The hooks operate on the frame of
// the component currently rendering on the owning executor.
func (e *Executor) frameworkModule() *goja.Object {
	vm := e.vm
	obj := vm.NewObject()
	_ = obj.Set("h", e.hFunc)
	_ = obj.Set("Fragment", domain.FragmentTag)
	_ = obj.Set("useState", e.useState)
	_ = obj.Set("useEffect", e.useEffect)
	_ = obj.Set("useMemo", e.useMemo)
	_ = obj.Set("useCallback", e.useCallback)
	_ = obj.Set("useRef", e.useRef)
	_ = obj.Set("default", obj)
	return obj
}

// hFunc is the hyperscript factory: h(tag, props, ...children). A string tag
// builds an element node, the Fragment sentinel groups children, and a
// function tag invokes the referenced component with props.
func (e *Executor) hFunc(call goja.FunctionCall) goja.Value {
	vm := e.vm
	tag := call.Argument(0)

	if fn, ok := goja.AssertFunction(tag); ok {
		props := call.Argument(1)
		propsObj := vm.NewObject()
		if obj, isObj := props.(*goja.Object); isObj && !goja.IsNull(props) {
			propsObj = obj
		}
		if len(call.Arguments) > 2 {
			children := make([]any, 0, len(call.Arguments)-2)
			for _, arg := range call.Arguments[2:] {
				children = append(children, arg)
			}
			_ = propsObj.Set("children", vm.ToValue(children))
		}
		res, err := fn(goja.Undefined(), propsObj)
		if err != nil {
			panic(err)
		}
		return res
	}

	node := &domain.VNode{Tag: tag.String()}
	if props := call.Argument(1); !goja.IsNull(props) && !goja.IsUndefined(props) {
		if exported, ok := props.Export().(map[string]any); ok {
			node.Props = exported
		}
	}
	for _, arg := range call.Arguments[2:] {
		appendChild(node, arg.Export())
	}
	return vm.ToValue(node)
}

// appendChild folds one child value into the node, flattening arrays and
// dropping null, undefined, and boolean children.
func appendChild(node *domain.VNode, child any) {
	switch v := child.(type) {
	case nil:
		return
	case bool:
		return
	case *domain.VNode:
		node.Children = append(node.Children, v)
	case []any:
		for _, item := range v {
			appendChild(node, item)
		}
	case string:
		node.Children = append(node.Children, domain.TextNode(v))
	default:
		node.Children = append(node.Children, domain.TextNode(fmt.Sprint(v)))
	}
}

// currentFrame returns the hook frame of the component being rendered,
// panicking a JS error when a hook is called outside a render.
func (e *Executor) currentFrame() *hookFrame {
	if e.current == nil {
		panic(e.vm.NewTypeError("hooks may only be called while rendering a component"))
	}
	return e.current
}

func (e *Executor) useState(call goja.FunctionCall) goja.Value {
	vm := e.vm
	frame := e.currentFrame()
	idx := frame.next()
	if frame.slots[idx] == nil {
		frame.slots[idx] = call.Argument(0)
	}
	setter := vm.ToValue(func(set goja.FunctionCall) goja.Value {
		frame.slots[idx] = set.Argument(0)
		frame.dirty = true
		return goja.Undefined()
	})
	pair := vm.NewArray(frame.slots[idx].(goja.Value), setter)
	return pair
}

func (e *Executor) useEffect(call goja.FunctionCall) goja.Value {
	frame := e.currentFrame()
	idx := frame.next()
	deps := exportDeps(call.Argument(1))

	prev, ran := frame.slots[idx].(*effectSlot)
	if ran && deps != nil && depsEqual(prev.deps, deps) {
		return goja.Undefined()
	}
	frame.slots[idx] = &effectSlot{deps: deps}
	if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
		if _, err := fn(goja.Undefined()); err != nil {
			panic(err)
		}
	}
	return goja.Undefined()
}

func (e *Executor) useMemo(call goja.FunctionCall) goja.Value {
	frame := e.currentFrame()
	idx := frame.next()
	deps := exportDeps(call.Argument(1))

	if prev, ok := frame.slots[idx].(*memoSlot); ok && depsEqual(prev.deps, deps) {
		return prev.value
	}
	fn, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(e.vm.NewTypeError("useMemo expects a factory function"))
	}
	value, err := fn(goja.Undefined())
	if err != nil {
		panic(err)
	}
	frame.slots[idx] = &memoSlot{deps: deps, value: value}
	return value
}

func (e *Executor) useCallback(call goja.FunctionCall) goja.Value {
	frame := e.currentFrame()
	idx := frame.next()
	deps := exportDeps(call.Argument(1))

	if prev, ok := frame.slots[idx].(*memoSlot); ok && depsEqual(prev.deps, deps) {
		return prev.value
	}
	value := call.Argument(0)
	frame.slots[idx] = &memoSlot{deps: deps, value: value}
	return value
}

func (e *Executor) useRef(call goja.FunctionCall) goja.Value {
	vm := e.vm
	frame := e.currentFrame()
	idx := frame.next()

	if prev, ok := frame.slots[idx].(*refSlot); ok {
		return prev.obj
	}
	obj := vm.NewObject()
	_ = obj.Set("current", call.Argument(0))
	frame.slots[idx] = &refSlot{obj: obj}
	return obj
}

// exportDeps flattens a dependency array for comparison; nil means "no deps
// given", which re-runs every render.
func exportDeps(v goja.Value) []any {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if arr, ok := v.Export().([]any); ok {
		return arr
	}
	return nil
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toVNode converts a render result into the domain tree.
func toVNode(v goja.Value) (*domain.VNode, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return &domain.VNode{Tag: domain.FragmentTag}, nil
	}
	switch exported := v.Export().(type) {
	case *domain.VNode:
		return exported, nil
	case string:
		return domain.TextNode(exported), nil
	case []any:
		root := &domain.VNode{Tag: domain.FragmentTag}
		for _, item := range exported {
			appendChild(root, item)
		}
		return root, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrRuntime, "component returned a non-renderable value"),
			"type", fmt.Sprintf("%T", exported))
	}
}
