// Command example wires a small HTTP service entirely through the injector:
// configuration comes from the config module, every endpoint is a multibound
// Route, and the chi router is assembled from the aggregate binding.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-inject"
	"github.com/km-arc/go-inject/config"
)

// ── Services ─────────────────────────────────────────────────────────────────

// Greeter is an ordinary singleton service with a config dependency.
type Greeter struct {
	appName string
}

func NewGreeter(cfg *config.Config) *Greeter {
	return &Greeter{appName: cfg.App.Name}
}

func (g *Greeter) Greet(name string) string {
	return fmt.Sprintf("%s says: hello, %s!", g.appName, name)
}

// Route is one HTTP endpoint contributed to the router through the set
// binder, the way Guice server modules multibind their plugins.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

func NewGreetRoute(g *Greeter) Route {
	return Route{
		Method:  http.MethodGet,
		Pattern: "/greet/{name}",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, g.Greet(chi.URLParam(r, "name")))
		},
	}
}

func NewHealthRoute() Route {
	return Route{
		Method:  http.MethodGet,
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "ok")
		},
	}
}

// ── Modules ──────────────────────────────────────────────────────────────────

// AppModule composes the whole application. RoutesModule is also installed
// by ServerModule; install deduplication keeps the diamond harmless.
type AppModule struct{}

func (AppModule) Configure(b *inject.Binder) {
	inject.Bind[*Greeter](b).ToConstructor(NewGreeter).In(inject.SingletonScope)
	b.Install(RoutesModule{})
	b.Install(ServerModule{})
}

// RoutesModule contributes the endpoints.
type RoutesModule struct{}

func (RoutesModule) Configure(b *inject.Binder) {
	routes := inject.NewSetBinder[Route](b)
	routes.AddBinding().ToConstructor(NewGreetRoute)
	routes.AddBinding().ToConstructor(NewHealthRoute)
}

// ServerModule assembles the chi router from the multibound routes.
type ServerModule struct{}

func (ServerModule) Configure(b *inject.Binder) {
	b.Install(RoutesModule{})
	inject.Bind[chi.Router](b).ToProvider(newRouter).In(inject.SingletonScope)
}

func newRouter(in *inject.Injector) (chi.Router, error) {
	routes, err := inject.Get[[]Route](in)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, rt.Handler)
	}
	return r, nil
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func main() {
	in, err := inject.New(config.Module(), AppModule{})
	if err != nil {
		log.Fatalf("composition failed: %v", err)
	}

	cfg := inject.MustGet[*config.Config](in)
	router := inject.MustGet[chi.Router](in)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	fmt.Printf("%s listening on http://localhost%s  [%s]\n",
		cfg.App.Name, addr, cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
