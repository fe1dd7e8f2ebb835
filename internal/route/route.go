// Package route maps paths to pages and keeps a back stack.
package route

import "strings"

type Page int

const (
	PageHome Page = iota
	PageProject
	PageNotFound
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageProject:
		return "project"
	default:
		return "not-found"
	}
}

type Route struct {
	Path      string
	Page      Page
	ProjectID string
}

const projectPrefix = "/projects/"

// Parse resolves "/" to home, "/projects/{id}" to a project page and
// everything else to not-found. A trailing slash is ignored.
func Parse(path string) Route {
	clean := path
	if len(clean) > 1 {
		clean = strings.TrimRight(clean, "/")
	}
	switch {
	case clean == "" || clean == "/":
		return Route{Path: "/", Page: PageHome}
	case strings.HasPrefix(clean, projectPrefix):
		id := strings.TrimPrefix(clean, projectPrefix)
		if id != "" && !strings.Contains(id, "/") {
			return Route{Path: clean, Page: PageProject, ProjectID: id}
		}
	}
	return Route{Path: clean, Page: PageNotFound}
}

func ProjectPath(id string) string { return projectPrefix + id }

// Router is a navigation history. The zero value starts at home.
type Router struct {
	stack []Route
}

func NewRouter(start string) *Router {
	return &Router{stack: []Route{Parse(start)}}
}

func (r *Router) Current() Route {
	if len(r.stack) == 0 {
		return Parse("/")
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Push(path string) Route {
	rt := Parse(path)
	if len(r.stack) == 0 {
		r.stack = append(r.stack, Parse("/"))
	}
	if r.Current().Path != rt.Path {
		r.stack = append(r.stack, rt)
	}
	return rt
}

// Back pops one entry. From the first entry it navigates home, matching a
// "back to portfolio" link on a deep-linked page.
func (r *Router) Back() Route {
	switch {
	case len(r.stack) > 1:
		r.stack = r.stack[:len(r.stack)-1]
	case r.Current().Page != PageHome:
		r.stack = []Route{Parse("/")}
	}
	return r.Current()
}

func (r *Router) Depth() int { return len(r.stack) }
