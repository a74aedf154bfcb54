package models

import "github.com/datastax/bigtable-admin-apis/gcrule"

// TableAdd defines a table to be created in the configured instance
type TableAdd struct {
	// TableID is the table name within the instance, e.g. "foobar".
	TableID string `json:"tableId" validate:"required,max=50,tableid"`

	Families []FamilyDefinition `json:"families,omitempty" validate:"dive"`

	// Row keys used to split the new table into several tablets.
	InitialSplits []string `json:"initialSplits,omitempty" validate:"dive,required"`

	// Granularity of the timestamps stored in the table. Only "MILLIS" is accepted today.
	Granularity string `json:"granularity,omitempty" validate:"omitempty,oneof=MILLIS"`
}

// FamilyDefinition defines a column family and its garbage collection policy
type FamilyDefinition struct {
	Name string `json:"name" validate:"required,family"`

	// Policy is optional; families without one never expire cells.
	Policy *gcrule.Policy `json:"policy,omitempty"`
}

// FamilyUpdate replaces the garbage collection policy of a family
type FamilyUpdate struct {
	Policy *gcrule.Policy `json:"policy,omitempty"`
}
