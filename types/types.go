// types package contains the public API types
// that are shared between both REST and GraphQL
package types

import (
	"net/http"

	"github.com/datastax/bigtable-admin-apis/gcrule"
)

type ModificationResult struct {
	Applied bool        `json:"applied"`
	Value   interface{} `json:"value,omitempty"`
}

type ListResult struct {
	NextPageToken string        `json:"nextPageToken,omitempty"`
	Values        []interface{} `json:"values"`
}

type ListOptions struct {
	PageSize  int32  `json:"pageSize"`
	PageToken string `json:"pageToken"`
	View      string `json:"view"`
	Filter    string `json:"filter"`
}

// Family is a column family as shown to gateway clients. Policy is omitted
// when the rule has no declarative form.
type Family struct {
	Name   string         `json:"name"`
	GcRule string         `json:"gcRule"`
	Policy *gcrule.Policy `json:"policy,omitempty"`
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
