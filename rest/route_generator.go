package rest

import (
	"github.com/datastax/bigtable-admin-apis/config"
	restEndpointV1 "github.com/datastax/bigtable-admin-apis/rest/endpoint/v1"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
)

type RouteGenerator struct {
	admin  rpc.TableAdmin
	ops    rpc.Operations
	config config.Config
}

func NewRouteGenerator(
	admin rpc.TableAdmin,
	ops rpc.Operations,
	cfg config.Config,
) *RouteGenerator {
	return &RouteGenerator{
		admin:  admin,
		ops:    ops,
		config: cfg,
	}
}

func (g *RouteGenerator) Routes(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, g.config.SupportedOperations(), g.config, g.admin, g.ops)
}
