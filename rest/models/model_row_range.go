package models

// RowRangeDrop deletes either the rows starting with RowKeyPrefix or all rows
type RowRangeDrop struct {
	RowKeyPrefix string `json:"rowKeyPrefix,omitempty" validate:"required_without=DeleteAllData"`

	DeleteAllData bool `json:"deleteAllData,omitempty"`
}
