package core

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

const htmlContentType = "text/html; charset=utf-8"

// PageRoute binds an exact path to a view rendered inside the page skeleton.
type PageRoute struct {
	Path  string
	Title string
	View  func() Fragment
}

type RuntimeContext struct {
	Env          string
	DebugHeaders bool
	// BodySuffix is appended to every rendered fragment. Dev mode uses it for
	// the live reload script.
	BodySuffix string
}

// Router serves the page group. Its table is fixed once NewRouter returns.
type Router struct {
	renderer *PageRenderer
	ctx      RuntimeContext
	routes   map[string]PageRoute
}

func NewRouter(renderer *PageRenderer, ctx RuntimeContext, routes ...PageRoute) *Router {
	r := &Router{
		renderer: renderer,
		ctx:      ctx,
		routes:   make(map[string]PageRoute, len(routes)),
	}
	for _, route := range routes {
		r.routes[route.Path] = route
	}
	return r
}

// Routes returns the configured page routes in no particular order.
func (r *Router) Routes() []PageRoute {
	out := make([]PageRoute, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	return out
}

func (r *Router) Lookup(path string) (PageRoute, error) {
	route, ok := r.routes[path]
	if !ok {
		return PageRoute{}, ErrNotFound
	}
	return route, nil
}

// RenderRoute renders a route to a complete document.
func (r *Router) RenderRoute(route PageRoute) (string, error) {
	body := route.View().HTML() + r.ctx.BodySuffix
	return r.renderer.RenderDocument(Document{Title: route.Title, Body: body})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	route, err := r.Lookup(req.URL.Path)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	page, err := r.RenderRoute(route)
	if err != nil {
		log.WithError(err).WithField("path", route.Path).Error("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if r.ctx.DebugHeaders {
		w.Header().Set("X-Blog-Route", route.Path)
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}
