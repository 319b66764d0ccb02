// Package http connects a container.Host to net/http.
//
// # Request scopes
//
// ScopeMiddleware gives every request its own container.Scope, so scoped
// services live exactly as long as the request:
//
//	router.Middleware(gohttp.ScopeMiddleware(host, logger))
//
//	router.Get("/me", func(w http.ResponseWriter, r *http.Request) {
//	    user, err := container.Resolve[*User](gohttp.MustScope(r), "user")
//	    if err != nil {
//	        gohttp.NewResponse(w).ResolveError(err)
//	        return
//	    }
//	    gohttp.NewResponse(w).Success(user)
//	})
//
// The scope is disposed after the handler returns; its id is echoed in the
// X-Scope-ID response header.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ResolveError(err)         // 404 / 503 / 500 from a container error
package http
