package endpoint

import (
	"crypto/tls"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/datastax/bigtable-admin-apis/auth"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/graphql"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rest"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
)

const DefaultOperationPollInterval = time.Second

type AdminEndpointConfig struct {
	target            string
	instanceName      string
	useTLS            bool
	dialOptions       []grpc.DialOption
	pollInterval      time.Duration
	naming            config.NamingConvention
	supportedOps      config.SchemaOperations
	useUserOrRoleAuth bool
	limiter           LimiterConfig
	logger            log.Logger
}

func (cfg AdminEndpointConfig) InstanceName() string {
	return cfg.instanceName
}

func (cfg AdminEndpointConfig) SupportedOperations() config.SchemaOperations {
	return cfg.supportedOps
}

func (cfg AdminEndpointConfig) OperationPollInterval() time.Duration {
	return cfg.pollInterval
}

func (cfg AdminEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg AdminEndpointConfig) UseUserOrRoleAuth() bool {
	return cfg.useUserOrRoleAuth
}

func (cfg AdminEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *AdminEndpointConfig) WithInstanceName(instanceName string) *AdminEndpointConfig {
	cfg.instanceName = instanceName
	return cfg
}

func (cfg *AdminEndpointConfig) WithTLS(useTLS bool) *AdminEndpointConfig {
	cfg.useTLS = useTLS
	return cfg
}

// WithDialOptions adds options used when connecting to the admin server.
func (cfg *AdminEndpointConfig) WithDialOptions(opts ...grpc.DialOption) *AdminEndpointConfig {
	cfg.dialOptions = append(cfg.dialOptions, opts...)
	return cfg
}

func (cfg *AdminEndpointConfig) WithOperationPollInterval(interval time.Duration) *AdminEndpointConfig {
	cfg.pollInterval = interval
	return cfg
}

func (cfg *AdminEndpointConfig) WithNaming(naming config.NamingConvention) *AdminEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *AdminEndpointConfig) WithSupportedOperations(supportedOps config.SchemaOperations) *AdminEndpointConfig {
	cfg.supportedOps = supportedOps
	return cfg
}

func (cfg *AdminEndpointConfig) WithUseUserOrRoleAuth(useUserOrRoleAuth bool) *AdminEndpointConfig {
	cfg.useUserOrRoleAuth = useUserOrRoleAuth
	return cfg
}

func (cfg *AdminEndpointConfig) WithLimiter(limiter LimiterConfig) *AdminEndpointConfig {
	cfg.limiter = limiter
	return cfg
}

// NewEndpoint connects to the admin server. The connection is established
// lazily on the first call.
func (cfg AdminEndpointConfig) NewEndpoint() (*AdminEndpoint, error) {
	transportCreds := insecure.NewCredentials()
	if cfg.useTLS {
		transportCreds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(transportCreds),
		grpc.WithChainUnaryInterceptor(log.UnaryClientInterceptor(cfg.logger)),
	}, cfg.dialOptions...)
	if cfg.useUserOrRoleAuth {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.TokenCredentials(cfg.useTLS)))
	}

	conn, err := grpc.NewClient(cfg.target, opts...)
	if err != nil {
		return nil, err
	}

	transport := rpc.NewGRPCTransport(conn)
	endpoint := cfg.newEndpointWithClients(rpc.NewTableAdminClient(transport), rpc.NewOperationsClient(transport))
	endpoint.conn = conn
	return endpoint, nil
}

func (cfg AdminEndpointConfig) newEndpointWithClients(admin rpc.TableAdmin, ops rpc.Operations) *AdminEndpoint {
	return &AdminEndpoint{
		admin:           admin,
		restRouteGen:    rest.NewRouteGenerator(admin, ops, cfg),
		graphQLRouteGen: graphql.NewRouteGenerator(admin, ops, cfg),
		supportedOps:    cfg.supportedOps,
		limiter:         NewFlowLimiter(cfg.limiter),
		logger:          cfg.logger,
	}
}

type AdminEndpoint struct {
	admin           rpc.TableAdmin
	restRouteGen    *rest.RouteGenerator
	graphQLRouteGen *graphql.RouteGenerator
	supportedOps    config.SchemaOperations
	limiter         *FlowLimiter
	logger          log.Logger
	conn            *grpc.ClientConn
}

func NewEndpointConfig(target string) (*AdminEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), target), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, target string) *AdminEndpointConfig {
	return &AdminEndpointConfig{
		target:       target,
		pollInterval: DefaultOperationPollInterval,
		naming:       config.NewDefaultNaming(),
		limiter:      DefaultLimiterConfig(),
		logger:       logger,
	}
}

func (e *AdminEndpoint) RoutesRest(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix)
}

func (e *AdminEndpoint) RoutesSchemaManagementGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.RoutesSchemaManagement(pattern, e.supportedOps)
}

// Handler wraps handler with the flow limiter and request logging.
func (e *AdminEndpoint) Handler(handler http.Handler) http.Handler {
	return log.NewLoggingHandler(e.limiter.Handler(handler), e.logger)
}

// TableAdmin is the client used by the routes.
func (e *AdminEndpoint) TableAdmin() rpc.TableAdmin {
	return e.admin
}

func (e *AdminEndpoint) Limiter() *FlowLimiter {
	return e.limiter
}

// Close releases the connection to the admin server.
func (e *AdminEndpoint) Close() error {
	if e.conn == nil {
		return nil
	}
	return e.conn.Close()
}
