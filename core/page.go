package core

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/root.html
var rootSkeleton string

// Document is the per-request input of the page renderer. Body is trusted
// markup and is written into the page unescaped.
type Document struct {
	Title string
	Body  string
}

type pageData struct {
	Title      string
	Body       string
	Stylesheet string
}

// PageRenderer wraps a body fragment and a title into the root HTML skeleton.
// It is safe for concurrent use.
type PageRenderer struct {
	tmpl       *template.Template
	stylesheet string
}

type PageOption func(*pageOptions)

type pageOptions struct {
	skeleton   string
	stylesheet string
}

// WithSkeleton replaces the embedded skeleton template.
func WithSkeleton(src string) PageOption {
	return func(o *pageOptions) {
		o.skeleton = src
	}
}

// WithStylesheet sets the href of the stylesheet link.
func WithStylesheet(href string) PageOption {
	return func(o *pageOptions) {
		o.stylesheet = href
	}
}

// NewPageRenderer parses the skeleton once. The skeleton is plain text/template
// so neither the title nor the body is escaped.
func NewPageRenderer(opts ...PageOption) (*PageRenderer, error) {
	o := pageOptions{skeleton: rootSkeleton}
	for _, opt := range opts {
		opt(&o)
	}

	tmpl, err := template.New("root").
		Funcs(sprig.TxtFuncMap()).
		Parse(o.skeleton)
	if err != nil {
		return nil, &ConstructionError{Component: "page renderer", Err: err}
	}

	return &PageRenderer{tmpl: tmpl, stylesheet: o.stylesheet}, nil
}

func (p *PageRenderer) Render(body, title string) (string, error) {
	var out strings.Builder
	out.Grow(len(rootSkeleton) + len(body) + len(title))

	err := p.tmpl.Execute(&out, pageData{
		Title:      title,
		Body:       body,
		Stylesheet: p.stylesheet,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func (p *PageRenderer) RenderDocument(doc Document) (string, error) {
	return p.Render(doc.Body, doc.Title)
}
