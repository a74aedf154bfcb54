package config

import (
	"strings"

	"github.com/iancoleman/strcase"
)

type NamingConvention interface {
	// ToFamilyName maps a source column to a column family id.
	ToFamilyName(column string) string
	// ToTableID maps a source table to a table id.
	ToTableID(table string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToFamilyName(column string) string {
	return strcase.ToSnake(column)
}

// Table ids may contain letters, digits, '_', '-' and '.'.
func (n *defaultNaming) ToTableID(table string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, strcase.ToSnake(table))
}
