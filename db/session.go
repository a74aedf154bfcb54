package db

import (
	"github.com/gocql/gocql"
)

type Session interface {
	// ExecuteIter executes a statement and returns the rows it produced
	ExecuteIter(query string, values ...interface{}) (ResultSet, error)

	KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error)

	Close()
}

type ResultSet interface {
	Values() []map[string]interface{}
}

type goCqlResultIterator struct {
	values []map[string]interface{}
}

func (r *goCqlResultIterator) Values() []map[string]interface{} {
	return r.values
}

func newResultIterator(iter *gocql.Iter) (*goCqlResultIterator, error) {
	items := make([]map[string]interface{}, 0)
	for {
		row := make(map[string]interface{})
		if !iter.MapScan(row) {
			break
		}
		items = append(items, row)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return &goCqlResultIterator{values: items}, nil
}

type GoCqlSession struct {
	ref *gocql.Session
}

func (session *GoCqlSession) ExecuteIter(query string, values ...interface{}) (ResultSet, error) {
	// Schema reads are not affected by consistency
	return newResultIterator(session.ref.Query(query, values...).Consistency(gocql.LocalOne).Iter())
}

func (session *GoCqlSession) KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error) {
	return session.ref.KeyspaceMetadata(keyspaceName)
}

func (session *GoCqlSession) Close() {
	session.ref.Close()
}
