package testutil

import (
	"flag"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"github.com/datastax/bigtable-admin-apis/log"
)

const defaultCassandraVersion = "3.11.6"

// ccmCluster is the single node cluster used by integration tests. ccm must be
// on the PATH.
type ccmCluster struct {
	name    string
	version string
	session *gocql.Session
}

var cluster *ccmCluster

// IntegrationTestsEnabled reports whether tests needing a local Cassandra
// cluster should run, either with -integration or INTEGRATION_TESTS=ON.
func IntegrationTestsEnabled() bool {
	if f := flag.Lookup("integration"); f != nil && f.Value.String() == "true" {
		return true
	}
	return strings.EqualFold(os.Getenv("INTEGRATION_TESTS"), "on")
}

func (c *ccmCluster) ccm(args ...string) {
	output, err := exec.Command("ccm", args...).CombinedOutput()
	if err != nil {
		TestLogger().Error("ccm failed", "args", args, "output", string(output), "error", err)
		panic(err)
	}
}

func (c *ccmCluster) start() {
	TestLogger().Info("starting cassandra", "version", c.version)
	c.ccm("create", c.name, "-v", c.version, "-n", "1", "-s", "-b")
}

func (c *ccmCluster) remove() {
	if c.session != nil {
		c.session.Close()
	}
	c.ccm("remove", c.name)
}

// SetupIntegrationTestFixture starts Cassandra once per test binary and runs
// queries, typically the DDL of the keyspaces under test. CCM_VERSION selects
// the Cassandra version.
func SetupIntegrationTestFixture(queries ...string) *gocql.Session {
	if cluster == nil {
		version := os.Getenv("CCM_VERSION")
		if version == "" {
			version = defaultCassandraVersion
		}
		cluster = &ccmCluster{name: "bigtable_admin_test", version: version}
		cluster.start()
	}

	if cluster.session == nil {
		cfg := gocql.NewCluster("127.0.0.1")
		cfg.Timeout = 5 * time.Second
		cfg.ConnectTimeout = cfg.Timeout

		session, err := cfg.CreateSession()
		PanicIfError(err)
		cluster.session = session
	}

	for _, query := range queries {
		PanicIfError(cluster.session.Query(query).Exec())
	}
	return cluster.session
}

func TearDownIntegrationTestFixture() {
	if cluster == nil {
		return
	}
	cluster.remove()
	cluster = nil
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// TestLogger discards everything unless TEST_TRACE=ON.
func TestLogger() log.Logger {
	if !strings.EqualFold(os.Getenv("TEST_TRACE"), "on") {
		return log.NewZapLogger(zap.NewNop())
	}
	logger, err := zap.NewDevelopment()
	PanicIfError(err)
	return log.NewZapLogger(logger)
}
