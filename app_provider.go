package main

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/km-arc/go-lifetime/framework/container"
	gohttp "github.com/km-arc/go-lifetime/framework/http"
	"github.com/km-arc/go-lifetime/framework/routing"
)

// Counter counts requests across the whole process.
type Counter struct {
	hits atomic.Int64
}

func (c *Counter) Inc() int64 { return c.hits.Add(1) }

// RequestInfo lives for one HTTP request.
type RequestInfo struct {
	ID      string    `json:"id"`
	Started time.Time `json:"started"`
	Hit     int64     `json:"hit"`
}

// Token is built fresh on every resolution.
type Token struct {
	Value string `json:"value"`
}

// AppServiceProvider registers the demo services and routes.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(c container.Container) (container.Container, error) {
	return container.From(c).
		Singleton(container.Bind("counter", container.Class(func(container.View) (*Counter, error) {
			return &Counter{}, nil
		}))).
		Scoped(container.Bind("request", container.Class(func(v container.View) (*RequestInfo, error) {
			counter, err := container.Resolve[*Counter](v, "counter")
			if err != nil {
				return nil, err
			}
			return &RequestInfo{ID: uuid.NewString(), Started: time.Now(), Hit: counter.Inc()}, nil
		}))).
		Transient(container.Bind("token", container.Class(func(container.View) (*Token, error) {
			return &Token{Value: uuid.NewString()}, nil
		}))).
		Build()
}

func (p *AppServiceProvider) Provides() []string {
	return []string{"counter", "request", "token"}
}

func (p *AppServiceProvider) Boot(_ context.Context, host *container.Host) error {
	router, err := container.Resolve[*routing.Router](host, "router")
	if err != nil {
		return err
	}

	router.Get("/counter", func(w http.ResponseWriter, r *http.Request) {
		counter, err := container.Resolve[*Counter](gohttp.MustScope(r), "counter")
		if err != nil {
			gohttp.NewResponse(w).ResolveError(err)
			return
		}
		gohttp.NewResponse(w).Success(map[string]int64{"hits": counter.hits.Load()})
	})

	router.Get("/request", func(w http.ResponseWriter, r *http.Request) {
		scope := gohttp.MustScope(r)
		first, err := container.Resolve[*RequestInfo](scope, "request")
		if err != nil {
			gohttp.NewResponse(w).ResolveError(err)
			return
		}
		again, _ := container.Resolve[*RequestInfo](scope, "request")
		gohttp.NewResponse(w).Success(map[string]any{
			"request":  first,
			"same":     first == again,
			"scope_id": scope.ID(),
		})
	})

	router.Get("/token", func(w http.ResponseWriter, r *http.Request) {
		scope := gohttp.MustScope(r)
		a, err := container.Resolve[*Token](scope, "token")
		if err != nil {
			gohttp.NewResponse(w).ResolveError(err)
			return
		}
		b, _ := container.Resolve[*Token](scope, "token")
		gohttp.NewResponse(w).Success([]*Token{a, b})
	})

	return nil
}
