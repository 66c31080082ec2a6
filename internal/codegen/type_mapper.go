// Package codegen generates artefacts from schemas: SQL DDL for data
// product classes and Go struct definitions.
package codegen

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/schemaprof/internal/schema"
	strutil "github.com/conduit-lang/schemaprof/internal/util/strings"
)

// Dialect is a SQL dialect the DDL generator can target
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect converts a string to a Dialect
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s", s)
	}
}

// TypeMapper maps slot ranges to SQL column types
type TypeMapper struct {
	view    *schema.View
	dialect Dialect
}

// NewTypeMapper creates a new TypeMapper
func NewTypeMapper(view *schema.View, dialect Dialect) *TypeMapper {
	return &TypeMapper{view: view, dialect: dialect}
}

// MapType returns the column type for a slot. Multivalued slots and
// embedded objects are stored as JSON documents.
func (tm *TypeMapper) MapType(slot *schema.Slot) (string, error) {
	rng := tm.view.RangeOf(slot)

	if slot.Multivalued || tm.view.IsClass(rng) {
		return tm.documentType(), nil
	}
	if tm.view.IsEnum(rng) {
		if tm.dialect == DialectPostgres {
			return QuoteIdentifier(tm.GetEnumTypeName(rng)), nil
		}
		return "TEXT", nil
	}

	prim, ok := tm.view.PrimitiveOf(rng)
	if !ok {
		return "", fmt.Errorf("range %q does not resolve to a type", rng)
	}
	return tm.mapPrimitiveType(prim), nil
}

func (tm *TypeMapper) documentType() string {
	if tm.dialect == DialectPostgres {
		return "JSONB"
	}
	return "TEXT"
}

// mapPrimitiveType maps a builtin type to the dialect's column type
func (tm *TypeMapper) mapPrimitiveType(prim string) string {
	sqlite := tm.dialect == DialectSQLite
	switch prim {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeFloat, schema.TypeDouble:
		if sqlite {
			return "REAL"
		}
		return "DOUBLE PRECISION"
	case schema.TypeDecimal:
		return "NUMERIC"
	case schema.TypeBoolean:
		if sqlite {
			return "INTEGER"
		}
		return "BOOLEAN"
	case schema.TypeDate:
		if sqlite {
			return "TEXT"
		}
		return "DATE"
	case schema.TypeDatetime:
		if sqlite {
			return "TEXT"
		}
		return "TIMESTAMP WITH TIME ZONE"
	case schema.TypeTime:
		if sqlite {
			return "TEXT"
		}
		return "TIME"
	default:
		return "TEXT"
	}
}

// MapNullability returns the NULL/NOT NULL constraint for a slot
func (tm *TypeMapper) MapNullability(slot *schema.Slot) string {
	if slot.Required || slot.Identifier {
		return "NOT NULL"
	}
	return "NULL"
}

// GetEnumTypeName generates a PostgreSQL enum type name for a schema enum
func (tm *TypeMapper) GetEnumTypeName(enumName string) string {
	return fmt.Sprintf("%s_enum", toSnakeCase(enumName))
}

// toSnakeCase converts a name to a snake_case SQL identifier, dropping
// every character other than letters, digits and underscores.
func toSnakeCase(s string) string {
	snake := strutil.ToSnakeCase(s)
	var result []rune
	for _, r := range snake {
		if isAlphanumeric(r) || r == '_' {
			result = append(result, r)
		}
	}
	// Ensure identifier starts with letter or underscore, not a digit
	if len(result) > 0 && result[0] >= '0' && result[0] <= '9' {
		result = append([]rune{'_'}, result...)
	}
	return string(result)
}

// isAlphanumeric checks if a rune is alphanumeric
func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// QuoteIdentifier wraps a SQL identifier in double quotes and escapes internal quotes
// This prevents SQL injection in table and column names
func QuoteIdentifier(identifier string) string {
	escaped := strings.ReplaceAll(identifier, `"`, `""`)
	return fmt.Sprintf(`"%s"`, escaped)
}

// quoteLiteral wraps a value in single quotes, doubling internal quotes
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
