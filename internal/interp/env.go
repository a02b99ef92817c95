package interp

import (
	"strconv"
	"strings"

	"setslice/internal/batch"
	"setslice/internal/source"
)

type binding struct {
	buf    *batch.Buffer[int64]
	scalar bool
	decl   source.Span
}

// Env holds the buffers declared by a program.
type Env struct {
	bindings map[string]*binding
	order    []string
}

// NewEnv returns an environment with no bindings.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]*binding)}
}

func (e *Env) define(name string, elems []int64, scalar bool, decl source.Span) *binding {
	b := &binding{buf: batch.NewBuffer(name, elems), scalar: scalar, decl: decl}
	if _, ok := e.bindings[name]; !ok {
		e.order = append(e.order, name)
	}
	e.bindings[name] = b
	return b
}

func (e *Env) lookup(name string) (*binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

// Buffer returns the current contents of name.
func (e *Env) Buffer(name string) ([]int64, bool) {
	b, ok := e.bindings[name]
	if !ok {
		return nil, false
	}
	return b.buf.Elems, true
}

// Names returns declared names in declaration order.
func (e *Env) Names() []string {
	return e.order
}

// Format renders a binding the way print does: `v = [0, 2, 3]` or `n = 5`.
func (e *Env) Format(name string) string {
	b, ok := e.bindings[name]
	if !ok {
		return name + " = <undefined>"
	}
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" = ")
	if b.scalar && len(b.buf.Elems) == 1 {
		sb.WriteString(strconv.FormatInt(b.buf.Elems[0], 10))
		return sb.String()
	}
	sb.WriteByte('[')
	for i, v := range b.buf.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}
