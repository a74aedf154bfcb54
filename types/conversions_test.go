package types

import (
	"testing"
	"time"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseView(t *testing.T) {
	for input, want := range map[string]adminpb.Table_View{
		"":            adminpb.Table_VIEW_UNSPECIFIED,
		"schemaView":  adminpb.Table_SCHEMA_VIEW,
		"schema_view": adminpb.Table_SCHEMA_VIEW,
		"name_only":   adminpb.Table_NAME_ONLY,
		"full":        adminpb.Table_FULL,
	} {
		view, err := ParseView(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, view, input)
	}

	_, err := ParseView("everything")
	assert.EqualError(t, err, "invalid table view: everything")
}

func TestToFamilies(t *testing.T) {
	age, err := gcrule.MaxAge(time.Hour)
	require.NoError(t, err)
	union, err := gcrule.Union(gcrule.MaxVersions(2), age)
	require.NoError(t, err)
	table := &adminpb.Table{ColumnFamilies: map[string]*adminpb.ColumnFamily{
		"b": {GcRule: union},
		"a": {},
	}}

	families := ToFamilies(table)
	require.Len(t, families, 2)
	assert.Equal(t, Family{Name: "a", GcRule: "never"}, families[0])
	assert.Equal(t, "b", families[1].Name)
	assert.Equal(t, "(versions() > 2 || age() > 1h0m0s)", families[1].GcRule)
	assert.Equal(t, &gcrule.Policy{Versions: 2, Age: time.Hour, Union: true}, families[1].Policy)

	assert.Empty(t, ToFamilies(nil))
}

func TestToValues(t *testing.T) {
	values, err := ToValues([]*adminpb.Table{{Name: "projects/p/instances/i/tables/t"}})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "projects/p/instances/i/tables/t", values[0].(map[string]interface{})["name"])
}
