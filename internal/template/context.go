package template

import (
	"fmt"
	"regexp"
	"strings"
)

// IndentMarker is substituted after every other marker, so indentation
// carried inside block values is expanded too.
const IndentMarker = "spaces"

var markerNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Marker returns the token written in skeletons for name.
func Marker(name string) string {
	return "<" + name + ">"
}

// Context maps marker names to replacement values. Insertion order is kept
// so that renders and diagnostics are stable.
type Context struct {
	names  []string
	values map[string]string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]string)}
}

// Set binds name to a scalar value. Setting a name again replaces its value
// and keeps its original position. It panics on a malformed name or on the
// reserved indentation marker, both of which are programming errors.
func (c *Context) Set(name, value string) *Context {
	if !markerNamePattern.MatchString(name) {
		panic(fmt.Errorf("%w: %q", ErrInvalidMarker, name))
	}
	if name == IndentMarker {
		panic(fmt.Errorf("%w: %q is reserved for indentation", ErrInvalidMarker, name))
	}
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = value
	return c
}

// SetBlock binds name to pre-rendered fragments joined by sep.
func (c *Context) SetBlock(name string, parts []string, sep string) *Context {
	return c.Set(name, strings.Join(parts, sep))
}

// Merge copies every binding of other into c. Bindings in other win.
func (c *Context) Merge(other *Context) *Context {
	if other == nil {
		return c
	}
	for _, name := range other.names {
		c.Set(name, other.values[name])
	}
	return c
}

// Get returns the value bound to name.
func (c *Context) Get(name string) (string, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Names returns the bound marker names in insertion order.
func (c *Context) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of bindings.
func (c *Context) Len() int {
	return len(c.names)
}

// pairs returns old/new pairs for strings.NewReplacer.
func (c *Context) pairs() []string {
	out := make([]string, 0, 2*len(c.names))
	for _, name := range c.names {
		out = append(out, Marker(name), c.values[name])
	}
	return out
}
