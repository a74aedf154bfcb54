package db

import (
	"errors"
	"time"

	"github.com/gocql/gocql"
)

// Config describes how to reach the Cassandra cluster whose schema is read.
type Config struct {
	Hosts    []string
	Username string
	Password string
	// LocalDC pins requests to a data center. Empty means the data center of
	// the first host that is discovered.
	LocalDC string
	Timeout time.Duration
}

// Db represents a connection to a db
type Db struct {
	session Session
}

// NewDb Gets a pointer to a db
func NewDb(cfg Config) (*Db, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.PoolConfig.HostSelectionPolicy = NewDefaultHostSelectionPolicy(cfg.LocalDC)
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
		cluster.ConnectTimeout = cfg.Timeout
	}

	if cfg.Username != "" && cfg.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.New("failed to create session")
	}

	return NewDbWithSession(&GoCqlSession{ref: session}), nil
}

func NewDbWithSession(session Session) *Db {
	return &Db{session: session}
}

func NewDbWithConnectedInstance(session *gocql.Session) *Db {
	return NewDbWithSession(&GoCqlSession{ref: session})
}

// Keyspace Retrieves a keyspace
func (db *Db) Keyspace(keyspace string) (*gocql.KeyspaceMetadata, error) {
	// We expose gocql types for now, we should wrap them in the future instead
	return db.session.KeyspaceMetadata(keyspace)
}

// Keyspaces Retrieves all the keyspace names
func (db *Db) Keyspaces() ([]string, error) {
	result, err := db.session.ExecuteIter("SELECT keyspace_name FROM system_schema.keyspaces")
	if err != nil {
		return nil, err
	}

	var keyspaces []string
	for _, row := range result.Values() {
		if name, ok := row["keyspace_name"].(string); ok {
			keyspaces = append(keyspaces, name)
		}
	}
	return keyspaces, nil
}

func (db *Db) Close() {
	db.session.Close()
}
