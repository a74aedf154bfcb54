package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "projects/p/instances/i", InstanceName("p", "i"))
	assert.Equal(t, "projects/p/instances/i/tables/t", TableName("p", "i", "t"))
	assert.Equal(t, "projects/p/instances/i/clusters/c", ClusterName("p", "i", "c"))
	assert.Equal(t, "projects/p/instances/i/clusters/c/snapshots/s", SnapshotName("p", "i", "c", "s"))
}

func TestFormatTableName(t *testing.T) {
	assert.Equal(t, "projects/p/instances/i/tables/t", FormatTableName("projects/p/instances/i", "t"))
	assert.Equal(t, "projects/x/instances/y/tables/z", FormatTableName("projects/p/instances/i", "projects/x/instances/y/tables/z"))
}

func TestFormatSnapshotName(t *testing.T) {
	const cluster = "projects/p/instances/i/clusters/c"

	name, err := FormatSnapshotName(cluster, "s")
	require.NoError(t, err)
	assert.Equal(t, cluster+"/snapshots/s", name)

	name, err = FormatSnapshotName(cluster, cluster+"/snapshots/s")
	require.NoError(t, err)
	assert.Equal(t, cluster+"/snapshots/s", name)

	for _, id := range []string{
		"projects/p/instances/i/clusters/other/snapshots/s",
		cluster + "/snapshots/",
		cluster + "/snapshots/s/extra",
		"a/b",
	} {
		_, err := FormatSnapshotName(cluster, id)
		assert.Error(t, err, id)
	}
}

func TestParseName(t *testing.T) {
	n, err := ParseName("projects/p/instances/i")
	require.NoError(t, err)
	assert.Equal(t, ResourceName{Project: "p", Instance: "i"}, n)

	n, err = ParseName("projects/p/instances/i/clusters/c/snapshots/s")
	require.NoError(t, err)
	assert.Equal(t, "clusters", n.Kind)
	assert.Equal(t, "c", n.ID)
	assert.Equal(t, "s", n.Snapshot)
	assert.Equal(t, "projects/p/instances/i", n.InstanceName())

	for _, name := range []string{
		"",
		"projects/p",
		"projects//instances/i",
		"tables/t",
		"projects/p/instances/i/backups/b",
		"projects/p/instances/i/tables/t/extra",
		"projects/p/instances/i/tables/t/snapshots/s",
	} {
		_, err := ParseName(name)
		assert.Error(t, err, name)
	}
}

func TestParseTableName(t *testing.T) {
	project, instance, table, err := ParseTableName("projects/p/instances/i/tables/t")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "i", "t"}, []string{project, instance, table})

	_, _, _, err = ParseTableName("projects/p/instances/i/clusters/c")
	assert.Error(t, err)
}

func TestRequestParams(t *testing.T) {
	assert.Equal(t, "", requestParams(struct{}{}))
	assert.Equal(t, "name=a%2Fb", requestParams(nameOnly("a/b")))
	assert.Equal(t, "", requestParams(nameOnly("")))
}

type nameOnly string

func (n nameOnly) GetName() string { return string(n) }
