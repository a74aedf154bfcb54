package rest

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"

	restEndpointV1 "github.com/datastax/bigtable-admin-apis/rest/endpoint/v1"
	"github.com/datastax/bigtable-admin-apis/types"
)

// ApiRouter mounts routes on a new router with an index listing them under prefix.
func ApiRouter(prefix string, routes []types.Route) *httprouter.Router {
	router := httprouter.New()
	AddRoutes(router, routes)
	AddIndex(router, prefix, routes)
	return router
}

// AddIndex serves the list of routes at prefix.
func AddIndex(router *httprouter.Router, prefix string, routes []types.Route) {
	router.GET(path.Join(prefix, "/"), index(routes))
}

func AddRoutes(router *httprouter.Router, routes []types.Route) {
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

type routeInfo struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}

func index(routes []types.Route) httprouter.Handle {
	infos := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		infos = append(infos, routeInfo{Method: route.Method, Pattern: route.Pattern})
	}
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		restEndpointV1.RespondJSONObjectWithCode(w, http.StatusOK, infos)
	}
}
