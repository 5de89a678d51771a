package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// APIVersion is the path segment every shop route is mounted under
const APIVersion = "v1"

// Section is a named path prefix with its own middleware, routes and nested
// sections. Nested sections run their parent's middleware first.
type Section struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	nested     []*Section
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// RouteInfo describes a registered route relative to the API root
type RouteInfo struct {
	Section string
	Method  string
	Path    string
}

// NewSection creates a section. middleware runs before every route in it.
func NewSection(name, prefix string, middleware ...gin.HandlerFunc) *Section {
	return &Section{name: name, prefix: prefix, middleware: middleware}
}

// Nest adds a child section whose routes also pass s's middleware
func (s *Section) Nest(name, prefix string, middleware ...gin.HandlerFunc) *Section {
	child := NewSection(name, prefix, middleware...)
	s.nested = append(s.nested, child)
	return child
}

// Handle registers a route. The last handler serves the request.
func (s *Section) Handle(method, relativePath string, handlers ...gin.HandlerFunc) *Section {
	s.routes = append(s.routes, route{method: method, path: relativePath, handlers: handlers})
	return s
}

func (s *Section) GET(p string, h ...gin.HandlerFunc) *Section { return s.Handle(http.MethodGet, p, h...) }
func (s *Section) POST(p string, h ...gin.HandlerFunc) *Section { return s.Handle(http.MethodPost, p, h...) }
func (s *Section) PUT(p string, h ...gin.HandlerFunc) *Section { return s.Handle(http.MethodPut, p, h...) }
func (s *Section) DELETE(p string, h ...gin.HandlerFunc) *Section { return s.Handle(http.MethodDelete, p, h...) }

func (s *Section) Name() string { return s.name }

// Routes lists the routes of s and its nested sections, depth first
func (s *Section) Routes() []RouteInfo {
	return s.collect("/", nil)
}

func (s *Section) collect(parent string, out []RouteInfo) []RouteInfo {
	base := path.Join(parent, s.prefix)
	for _, r := range s.routes {
		out = append(out, RouteInfo{Section: s.name, Method: r.method, Path: joinRoute(base, r.path)})
	}
	for _, n := range s.nested {
		out = n.collect(base, out)
	}
	return out
}

func (s *Section) mount(parent gin.IRouter) {
	g := parent.Group(s.prefix, s.middleware...)
	for _, r := range s.routes {
		g.Handle(r.method, r.path, r.handlers...)
	}
	for _, n := range s.nested {
		n.mount(g)
	}
}

// joinRoute keeps an empty relative path from adding a trailing slash
func joinRoute(base, rel string) string {
	if rel == "" {
		return base
	}
	return path.Join(base, rel)
}

// Mount registers sections under /api/<version> of engine
func Mount(engine gin.IRouter, version string, sections ...*Section) {
	api := engine.Group("/api/" + version)
	for _, s := range sections {
		s.mount(api)
	}
}
