package core

import (
	"fmt"
	"html"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// Fragment is anything that produces a piece of HTML without the document
// skeleton around it.
type Fragment interface {
	HTML() string
}

// RawHTML is trusted markup returned as is.
type RawHTML string

func (r RawHTML) HTML() string {
	return string(r)
}

// Text is escaped when rendered.
type Text string

func (t Text) HTML() string {
	return html.EscapeString(string(t))
}

// Markdown is rendered with blackfriday's common extensions.
type Markdown string

func (m Markdown) HTML() string {
	return string(blackfriday.Run([]byte(m)))
}

type Attr struct {
	Key   string
	Value string
}

// Element is a node of a component tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Fragment
}

// El builds an element. Attr values among children are applied as
// attributes and strings become Text. Any other child type, including nil,
// panics.
func El(tag string, children ...any) *Element {
	e := &Element{Tag: tag}
	for i, c := range children {
		switch v := c.(type) {
		case Attr:
			e.Attrs = append(e.Attrs, v)
		case string:
			e.Children = append(e.Children, Text(v))
		case *Element:
			if v == nil {
				panic(fmt.Sprintf("blog: El(%q): child %d is a nil *Element", tag, i))
			}
			e.Children = append(e.Children, v)
		case Fragment:
			e.Children = append(e.Children, v)
		default:
			panic(fmt.Sprintf("blog: El(%q): unsupported child %d of type %T", tag, i, c))
		}
	}
	return e
}

func Class(name string) Attr {
	return Attr{Key: "class", Value: name}
}

func (e *Element) HTML() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		b.WriteString(c.HTML())
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
	return b.String()
}

// MarkdownView renders src once and wraps it in the same prose article as
// Index.
func MarkdownView(src string) func() Fragment {
	body := RawHTML(Markdown(src).HTML())
	return func() Fragment {
		return El("article", Class("prose"), body)
	}
}

// Index is the home page content.
func Index() Fragment {
	return El("article", Class("prose"),
		El("h1", "Index"),
		El("p", "Hello"),
	)
}
