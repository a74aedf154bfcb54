package types

import (
	"fmt"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	"github.com/datastax/bigtable-admin-apis/wire"
	"github.com/iancoleman/strcase"
)

// ParseView accepts a table view in any case, "schemaView", "schema_view" and
// "SCHEMA_VIEW" alike. An empty view is VIEW_UNSPECIFIED.
func ParseView(view string) (adminpb.Table_View, error) {
	if view == "" {
		return adminpb.Table_VIEW_UNSPECIFIED, nil
	}
	v, ok := adminpb.Table_View_value[strcase.ToScreamingSnake(view)]
	if !ok {
		return 0, fmt.Errorf("invalid table view: %s", view)
	}
	return adminpb.Table_View(v), nil
}

// ToFamilies lists the families of t sorted by name.
func ToFamilies(t *adminpb.Table) []Family {
	families := t.GetColumnFamilies()
	result := make([]Family, 0, len(families))
	for _, name := range wire.SortedKeys(families) {
		result = append(result, ToFamily(name, families[name]))
	}
	return result
}

func ToFamily(name string, cf *adminpb.ColumnFamily) Family {
	f := Family{Name: name, GcRule: gcrule.String(cf.GetGcRule())}
	if cf.GetGcRule() != nil {
		if p, err := gcrule.ToPolicy(cf.GetGcRule()); err == nil {
			f.Policy = &p
		}
	}
	return f
}

// ToValues converts each message to its JSON object form.
func ToValues[M wire.Message](items []M) ([]interface{}, error) {
	values := make([]interface{}, 0, len(items))
	for _, item := range items {
		obj, err := wire.ToObject(item)
		if err != nil {
			return nil, err
		}
		values = append(values, obj)
	}
	return values, nil
}
