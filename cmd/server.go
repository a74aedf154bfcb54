package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/endpoint"
	"github.com/datastax/bigtable-admin-apis/graphql"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rest"
)

const defaultGraphQLSchemaPath = "/graphql-schema"
const defaultRESTPath = "/rest"
const defaultGraphQLPlaygroundPath = "/graphql-playground"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve --instance [INSTANCE] [--start-graphql|--start-rest] [OPTIONS]",
		Short: "GraphQL and REST endpoints for the Bigtable table admin API",
		Args: func(cmd *cobra.Command, args []string) error {
			startGraphQL := viper.GetBool("start-graphql")
			startREST := viper.GetBool("start-rest")

			if !startGraphQL && !startREST {
				return errors.New("at least one endpoint type should be started")
			}
			if startGraphQL && startREST && viper.GetString("graphql-schema-path") == viper.GetString("rest-path") {
				return errors.New("graphql and rest paths can not be the same")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			endpoint := createEndpoint()
			defer endpoint.Close()

			router := createRouter()
			endpointNames := ""
			if viper.GetBool("start-graphql") {
				addGraphQLRoutes(router, endpoint)
				endpointNames += "GraphQL"
			}
			if viper.GetBool("start-rest") {
				addRESTRoutes(router, endpoint)
				if endpointNames != "" {
					endpointNames += "/"
				}
				endpointNames += "REST"
			}
			listenAndServe(endpoint.Limiter().Handler(router), viper.GetInt("port"), endpointNames)
		},
	}

	flags := cmd.Flags()
	flags.Int("port", 8080, "port to bind the endpoints to")
	flags.Bool("request-logging", false, "enable request logging")
	flags.StringSlice("operations", []string{
		"TableCreate",
		"FamilyModify",
	}, "list of supported schema management operations. options: TableCreate,TableDrop,FamilyModify,RowRangeDrop,SnapshotCreate,SnapshotDelete,SnapshotRestore,OperationCancel")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")
	flags.Bool("user-or-role-auth", false, "forward the bearer token of each request to the admin server")

	// GraphQL specific flags
	flags.Bool("start-graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-schema-path", defaultGraphQLSchemaPath, "GraphQL schema management path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")

	// REST specific flags
	flags.Bool("start-rest", true, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")

	// Rate limiting flags, also read from a "rate-limit" section of the config file
	defaults := endpoint.DefaultLimiterConfig()
	flags.Bool("rate-limit-enable", defaults.Enable, "limit the rate of requests")
	flags.Int("rate-limit-fill-rate", defaults.TokenBucketFillRate, "requests allowed per second")
	flags.Int("rate-limit-burst", defaults.TokenBucketBurstEventCapacity, "largest burst of requests")
	flags.StringSlice("rate-limit-unlimited-paths", nil, "paths that are never limited")

	bindFlags(flags)
	return cmd
}

func createEndpoint() *endpoint.AdminEndpoint {
	supportedOps := getStringSlice("operations")
	ops, err := config.Ops(supportedOps...)
	if err != nil {
		logger.Fatal("invalid supported operation", "operations", supportedOps, "error", err)
	}

	cfg := createEndpointConfig().
		WithSupportedOperations(ops).
		WithUseUserOrRoleAuth(viper.GetBool("user-or-role-auth")).
		WithLimiter(limiterConfig())

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func limiterConfig() endpoint.LimiterConfig {
	limiter := endpoint.LimiterConfig{
		Enable:                        viper.GetBool("rate-limit-enable"),
		TokenBucketFillRate:           viper.GetInt("rate-limit-fill-rate"),
		TokenBucketBurstEventCapacity: viper.GetInt("rate-limit-burst"),
		UnlimitedPaths:                getStringSlice("rate-limit-unlimited-paths"),
	}
	if viper.InConfig("rate-limit") {
		if err := viper.UnmarshalKey("rate-limit", &limiter); err != nil {
			logger.Fatal("invalid rate-limit section", "error", err)
		}
	}
	return limiter
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.AdminEndpoint) {
	schemaPath := viper.GetString("graphql-schema-path")
	routes, err := endpoint.RoutesSchemaManagementGraphQL(schemaPath)
	if err != nil {
		logger.Fatal("unable to generate graphql schema routes",
			"error", err)
	}

	rest.AddRoutes(router, routes)

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("port"))
		logger.Info("get started by visiting the GraphQL playground",
			"url", fmt.Sprintf("%s%s", hostAndPort, playgroundPath))
		router.GET(playgroundPath, graphql.GetPlaygroundHandle(hostAndPort+schemaPath))
	}
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.AdminEndpoint) {
	prefix := viper.GetString("rest-path")
	routes := endpoint.RoutesRest(prefix)
	rest.AddRoutes(router, routes)
	rest.AddIndex(router, prefix, routes)
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Methods", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int, endpointNames string) {
	logger.Info("server listening",
		"port", port,
		"type", endpointNames)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
