package driver

import (
	"strconv"
	"strings"
)

// SetClause builds the SET list of a partial UPDATE, placeholders are numbered in insertion order
type SetClause struct {
	columns []string
	args    []interface{}
}

// Add assign value to column
func (sc *SetClause) Add(column string, value interface{}) *SetClause {
	sc.args = append(sc.args, value)
	sc.columns = append(sc.columns, `"`+column+`" = $`+strconv.Itoa(len(sc.args)))
	return sc
}

// Len number of assignments
func (sc *SetClause) Len() int {
	return len(sc.args)
}

// Next placeholder following the assignments, for the WHERE clause
func (sc *SetClause) Next() string {
	return "$" + strconv.Itoa(len(sc.args)+1)
}

func (sc *SetClause) String() string {
	return strings.Join(sc.columns, ", ")
}

// Args assigned values followed by extra
func (sc *SetClause) Args(extra ...interface{}) []interface{} {
	return append(append([]interface{}{}, sc.args...), extra...)
}
