// Package endpoints holds the URLs the todo frontend calls on the backend
// API, resolved once from the process configuration.
package endpoints

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/config"
)

const (
	apiPrefix   = "/api/v1"
	authPrefix  = apiPrefix + "/auth"
	todosPrefix = apiPrefix + "/todos"

	// IDPlaceholder stands in for the identifier when parameterized
	// endpoints are rendered as templates.
	IDPlaceholder = "{id}"
)

type Auth struct {
	Login    string
	Register string
	Me       string
	Logout   string
}

type Todos struct {
	Base string

	// GetByID and Toggle interpolate id verbatim; it is not validated or
	// escaped.
	GetByID func(id string) string
	Toggle  func(id string) string
}

// Table is the endpoint table for one base URL. It is never modified after
// New returns.
type Table struct {
	BaseURL string
	Auth    Auth
	Todos   Todos
}

func New(baseURL string) Table {
	return Table{
		BaseURL: baseURL,
		Auth: Auth{
			Login:    baseURL + authPrefix + "/login",
			Register: baseURL + authPrefix + "/register",
			Me:       baseURL + authPrefix + "/me",
			Logout:   baseURL + authPrefix + "/logout",
		},
		Todos: Todos{
			Base: baseURL + todosPrefix,
			GetByID: func(id string) string {
				return baseURL + todosPrefix + "/" + id
			},
			Toggle: func(id string) string {
				return baseURL + todosPrefix + "/" + id + "/toggle"
			},
		},
	}
}

func FromConfig(cfg config.Config) Table {
	return New(ResolveBaseURL(cfg.IsProduction(), cfg.APIBaseURL))
}

var defaultTable = sync.OnceValue(func() Table {
	return FromConfig(config.Load())
})

// Default returns the process-wide table. The environment is read on the
// first call only.
func Default() Table {
	return defaultTable()
}

type tableJSON struct {
	BaseURL   string    `json:"baseUrl"`
	Endpoints groupJSON `json:"endpoints"`
}

type groupJSON struct {
	Auth  authJSON  `json:"auth"`
	Todos todosJSON `json:"todos"`
}

type authJSON struct {
	Login    string `json:"login"`
	Register string `json:"register"`
	Me       string `json:"me"`
	Logout   string `json:"logout"`
}

type todosJSON struct {
	Base    string `json:"base"`
	GetByID string `json:"getById"`
	Toggle  string `json:"toggle"`
}

// MarshalJSON renders the table for a browser bundle. Parameterized
// endpoints become templates containing IDPlaceholder.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{
		BaseURL: t.BaseURL,
		Endpoints: groupJSON{
			Auth: authJSON{
				Login:    t.Auth.Login,
				Register: t.Auth.Register,
				Me:       t.Auth.Me,
				Logout:   t.Auth.Logout,
			},
			Todos: todosJSON{
				Base:    t.Todos.Base,
				GetByID: template(t.Todos.GetByID),
				Toggle:  template(t.Todos.Toggle),
			},
		},
	})
}

func template(build func(id string) string) string {
	if build == nil {
		return ""
	}
	return build(IDPlaceholder)
}
