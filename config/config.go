package config

import (
	"time"

	"github.com/datastax/bigtable-admin-apis/log"
)

// Config is consumed by the gateway packages. endpoint.AdminEndpointConfig is the
// production implementation.
type Config interface {
	// InstanceName is the instance whose tables are administered, "projects/<p>/instances/<i>".
	InstanceName() string
	SupportedOperations() SchemaOperations
	OperationPollInterval() time.Duration
	Naming() NamingConvention
	UseUserOrRoleAuth() bool
	Logger() log.Logger
}
