package routes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned by ParsePath for a path outside the route table.
var ErrUnknownRoute = errors.New("unknown route")

// View is one of the screens of the client. The set is closed.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewHome
	ViewSummaries
	ViewSettings
	ViewSummaryDetail
)

var viewNames = map[View]string{
	ViewLogin:         "login",
	ViewRegister:      "register",
	ViewHome:          "home",
	ViewSummaries:     "summaries",
	ViewSettings:      "settings",
	ViewSummaryDetail: "summary-detail",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Public views render whether or not anyone is signed in.
func (v View) Public() bool {
	return v == ViewLogin || v == ViewRegister
}

// Route is a navigation target. ID is only meaningful for ViewSummaryDetail.
type Route struct {
	View View
	ID   string
}

func Login() Route                  { return Route{View: ViewLogin} }
func Register() Route               { return Route{View: ViewRegister} }
func Home() Route                   { return Route{View: ViewHome} }
func Summaries() Route              { return Route{View: ViewSummaries} }
func Settings() Route               { return Route{View: ViewSettings} }
func SummaryDetail(id string) Route { return Route{View: ViewSummaryDetail, ID: id} }

// Route paths
const (
	PathLogin     = "/"
	PathRegister  = "/register"
	PathHome      = "/home"
	PathSummaries = "/summaries"
	PathSettings  = "/settings"
)

// Path returns the route's path in the route table, e.g. /summaries/{id}.
func (r Route) Path() string {
	switch r.View {
	case ViewLogin:
		return PathLogin
	case ViewRegister:
		return PathRegister
	case ViewHome:
		return PathHome
	case ViewSummaries:
		return PathSummaries
	case ViewSettings:
		return PathSettings
	case ViewSummaryDetail:
		return PathSummaries + "/" + r.ID
	}
	return ""
}

func (r Route) String() string {
	return r.Path()
}

// ParsePath maps a path back to its Route. A trailing slash is ignored.
func ParsePath(path string) (Route, error) {
	p := path
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	switch p {
	case PathLogin:
		return Login(), nil
	case PathRegister:
		return Register(), nil
	case PathHome:
		return Home(), nil
	case PathSummaries:
		return Summaries(), nil
	case PathSettings:
		return Settings(), nil
	}
	if id, ok := strings.CutPrefix(p, PathSummaries+"/"); ok && id != "" && !strings.Contains(id, "/") {
		return SummaryDetail(id), nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}
