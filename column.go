package cqldb

import "strings"

// ColumnDefinition describes one declared variable or result column: where
// it lives and its wire type. Both are supplied by the server at prepare
// time.
type ColumnDefinition struct {
	Keyspace string
	Table    string
	Name     string
	Type     DataType
}

// ColumnDefinitions is an ordered variable or column schema.
type ColumnDefinitions []ColumnDefinition

// IndexOf resolves a name to the first matching index. Lookup follows CQL
// identifier rules: a name wrapped in double quotes matches case-sensitively
// against the stored name, anything else matches case-insensitively. When
// duplicates exist the lowest index wins.
func (d ColumnDefinitions) IndexOf(name string) (int, bool) {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		exact := name[1 : len(name)-1]
		for i := range d {
			if d[i].Name == exact {
				return i, true
			}
		}
		return -1, false
	}
	for i := range d {
		if strings.EqualFold(d[i].Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Get returns the first definition matching name, following the IndexOf
// rules.
func (d ColumnDefinitions) Get(name string) (ColumnDefinition, bool) {
	i, ok := d.IndexOf(name)
	if !ok {
		return ColumnDefinition{}, false
	}
	return d[i], true
}
