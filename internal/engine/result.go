package engine

// ColumnType describes how a result column is typed when materialized.
type ColumnType int

const (
	// TextColumn holds group-key components.
	TextColumn ColumnType = iota
	// NumericColumn holds metric and window values.
	NumericColumn
	// IntegerColumn holds rank values and integer counts.
	IntegerColumn
)

// Column is one column of a materialized result set.
type Column struct {
	Name string
	Type ColumnType
}

// ResultSet is a report's materialized output: a fixed column schema and
// rows in deterministic order. Row values are string, float64 or int
// matching the column type.
type ResultSet struct {
	Columns []Column
	Rows    [][]any
}

// NewResultSet returns an empty result set with the given columns.
func NewResultSet(cols ...Column) *ResultSet {
	return &ResultSet{Columns: cols}
}

// Append adds a row. The caller supplies one value per column.
func (rs *ResultSet) Append(values ...any) {
	if len(values) != len(rs.Columns) {
		panic("engine: result row width does not match column schema")
	}
	rs.Rows = append(rs.Rows, values)
}

// Text declares a text column.
func Text(name string) Column { return Column{Name: name, Type: TextColumn} }

// Numeric declares a numeric column.
func Numeric(name string) Column { return Column{Name: name, Type: NumericColumn} }

// Integer declares an integer column.
func Integer(name string) Column { return Column{Name: name, Type: IntegerColumn} }
