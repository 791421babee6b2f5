// Package jsdoc parses JSDoc comments into a small syntax tree.
package jsdoc

// Node is implemented by every JSDoc node.
type Node interface {
	node()
}

// DocComment is a parsed /** */ comment: the free description followed by
// its block tags.
type DocComment struct {
	Body []Node
	Tags []Node
}

func (DocComment) node() {}

type Text struct {
	Content string
}

func (Text) node() {}

// Code is an {@code ...} inline tag.
type Code struct {
	Content string
}

func (Code) node() {}

// Link is an {@link ...}, {@linkcode ...} or {@linkplain ...} inline tag.
// The label follows the reference after whitespace or a '|'.
type Link struct {
	Reference string
	Label     string
	Plain     bool
}

func (Link) node() {}

type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Param is a @param (or @arg, @argument) tag. Optional is set for names
// written in square brackets, which may carry a default: [name=value].
type Param struct {
	Type        string
	Name        string
	Optional    bool
	Default     string
	Description []Node
}

func (Param) node() {}

// Returns is a @returns or @return tag.
type Returns struct {
	Type        string
	Description []Node
}

func (Returns) node() {}

// Throws is a @throws or @exception tag.
type Throws struct {
	Type        string
	Description []Node
}

func (Throws) node() {}

// TypeTag is a @type tag.
type TypeTag struct {
	Type string
}

func (TypeTag) node() {}

// Example is an @example tag. Code keeps its line breaks.
type Example struct {
	Code string
}

func (Example) node() {}

type See struct {
	Reference string
}

func (See) node() {}

type Since struct {
	Version string
}

func (Since) node() {}

type Deprecated struct {
	Description []Node
}

func (Deprecated) node() {}

type UnknownBlockTag struct {
	Name    string
	Content []Node
}

func (UnknownBlockTag) node() {}

// Param returns the @param tag named name.
func (d *DocComment) Param(name string) (Param, bool) {
	for _, tag := range d.Tags {
		if p, ok := tag.(Param); ok && p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ReturnType returns the type of the first @returns tag, if any.
func (d *DocComment) ReturnType() string {
	for _, tag := range d.Tags {
		if r, ok := tag.(Returns); ok {
			return r.Type
		}
	}
	return ""
}

func (d *DocComment) IsDeprecated() bool {
	for _, tag := range d.Tags {
		if _, ok := tag.(Deprecated); ok {
			return true
		}
	}
	return false
}
