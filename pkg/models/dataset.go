package models

// ColumnType is the profiled semantic type of a column.
type ColumnType string

const (
	ColumnTypeNumeric     ColumnType = "numeric"
	ColumnTypeBoolean     ColumnType = "boolean"
	ColumnTypeDatetime    ColumnType = "datetime"
	ColumnTypeCategorical ColumnType = "categorical"
	ColumnTypeText        ColumnType = "text"
)

// Row is one record of the dataset, keyed by column name.
type Row map[string]Value

// Clone returns a shallow copy of the row. Values are immutable, so a
// clone shares no mutable state with the original.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ColumnDescriptor describes one profiled column.
type ColumnDescriptor struct {
	Name string     `json:"name" yaml:"name"`
	Type ColumnType `json:"type" yaml:"type"`
}

// DatasetProfile is the externally supplied schema for a dataset. Column
// order determines report order. The profile is trusted input; this
// package performs no validation of it against the rows.
type DatasetProfile struct {
	Columns []ColumnDescriptor `json:"columns" yaml:"columns"`
}

// CleaningResult holds the cleaned copy of a dataset plus one
// human-readable report line per profiled column, in profile order.
type CleaningResult struct {
	Rows   []Row    `json:"rows"`
	Report []string `json:"report"`
}
