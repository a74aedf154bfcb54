package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/datastax/bigtable-admin-apis/auth"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
)

type executeQueryFunc func(ctx context.Context, body RequestBody) *graphql.Result

type RouteGenerator struct {
	cfg       config.Config
	logger    log.Logger
	schemaGen *SchemaGenerator
}

type RequestBody struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

func NewRouteGenerator(admin rpc.TableAdmin, ops rpc.Operations, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		cfg:       cfg,
		logger:    cfg.Logger(),
		schemaGen: NewSchemaGenerator(admin, ops, cfg),
	}
}

// RoutesSchemaManagement serves the table admin schema on pattern. Only the
// mutations in ops are exposed.
func (rg *RouteGenerator) RoutesSchemaManagement(pattern string, ops config.SchemaOperations) ([]types.Route, error) {
	schema, err := rg.schemaGen.BuildSchema(ops)
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema for schema management: %s", err)
	}
	return rg.routesForSchema(pattern, func(ctx context.Context, body RequestBody) *graphql.Result {
		return rg.executeQuery(ctx, body, schema)
	}), nil
}

func (rg *RouteGenerator) context(r *http.Request) context.Context {
	ctx := r.Context()
	if rg.cfg.UseUserOrRoleAuth() {
		ctx = auth.WithContextToken(ctx, auth.RequestToken(r))
	}
	return ctx
}

func (rg *RouteGenerator) routesForSchema(pattern string, execute executeQueryFunc) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body := RequestBody{
					Query:         r.URL.Query().Get("query"),
					OperationName: r.URL.Query().Get("operationName"),
				}
				if variables := r.URL.Query().Get("variables"); variables != "" {
					if err := json.Unmarshal([]byte(variables), &body.Variables); err != nil {
						http.Error(w, "Variables are invalid", http.StatusBadRequest)
						return
					}
				}
				writeResult(w, execute(rg.context(r), body))
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", http.StatusBadRequest)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", http.StatusBadRequest)
					return
				}

				writeResult(w, execute(rg.context(r), body))
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), http.StatusInternalServerError)
	}
}

func (rg *RouteGenerator) executeQuery(ctx context.Context, body RequestBody, schema graphql.Schema) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		OperationName:  body.OperationName,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Debug("errors processing graphql query", "errors", result.Errors)
	}
	return result
}
