package codegen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

// DDLGenerator generates DDL statements that store instances of a flat
// (data product) class as table rows.
type DDLGenerator struct {
	view       *schema.View
	dialect    Dialect
	typeMapper *TypeMapper
}

// NewDDLGenerator creates a new DDL generator. The view resolves the
// ranges of the classes passed to it.
func NewDDLGenerator(view *schema.View, dialect Dialect) *DDLGenerator {
	return &DDLGenerator{
		view:       view,
		dialect:    dialect,
		typeMapper: NewTypeMapper(view, dialect),
	}
}

// TableName returns the table name for a class
func TableName(class string) string {
	return toSnakeCase(class)
}

// GenerateCreateTable generates a CREATE TABLE statement for a class
func (g *DDLGenerator) GenerateCreateTable(class *schema.Class) (string, error) {
	if class == nil {
		return "", fmt.Errorf("class cannot be nil")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", QuoteIdentifier(TableName(class.Name)))

	columns := g.orderColumns(class)
	if len(columns) == 0 {
		return "", fmt.Errorf("class %s has no attributes", class.Name)
	}

	columnDefs := make([]string, 0, len(columns))
	for _, attr := range columns {
		def, err := g.generateColumnDefinition(attr)
		if err != nil {
			return "", fmt.Errorf("attribute %s: %w", attr.Name, err)
		}
		columnDefs = append(columnDefs, def)
	}

	for i, def := range columnDefs {
		b.WriteString("  ")
		b.WriteString(def)
		if i < len(columnDefs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String(), nil
}

// generateColumnDefinition generates a column definition for an attribute
func (g *DDLGenerator) generateColumnDefinition(attr *schema.Slot) (string, error) {
	columnName := toSnakeCase(attr.Name)
	columnType, err := g.typeMapper.MapType(attr)
	if err != nil {
		return "", fmt.Errorf("mapping type: %w", err)
	}

	parts := []string{QuoteIdentifier(columnName), columnType, g.typeMapper.MapNullability(attr)}
	if attr.Identifier {
		parts = append(parts, "PRIMARY KEY")
	}

	rng := g.view.RangeOf(attr)
	if g.dialect == DialectSQLite && !attr.Multivalued && g.view.IsEnum(rng) {
		values := g.enumValues(rng)
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = quoteLiteral(v)
		}
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (%s))", QuoteIdentifier(columnName), strings.Join(quoted, ", ")))
	}
	return strings.Join(parts, " "), nil
}

// orderColumns puts the identifier first and keeps declaration order otherwise
func (g *DDLGenerator) orderColumns(class *schema.Class) []*schema.Slot {
	var columns []*schema.Slot
	for _, attr := range class.Attributes.All() {
		columns = append(columns, attr)
	}
	slices.SortStableFunc(columns, func(a, b *schema.Slot) int {
		return columnPriority(a) - columnPriority(b)
	})
	return columns
}

func columnPriority(attr *schema.Slot) int {
	if attr.Identifier {
		return 0
	}
	return 1
}

func (g *DDLGenerator) enumValues(name string) []string {
	e, ok := g.view.Enum(name)
	if !ok {
		return nil
	}
	var values []string
	for _, pv := range e.PermissibleValues.All() {
		values = append(values, pv.Text)
	}
	return values
}

// GenerateEnumType generates a CREATE TYPE statement for a schema enum.
// PostgreSQL has no CREATE TYPE IF NOT EXISTS, so the statement runs in a
// block that ignores an existing type, like the table's IF NOT EXISTS.
func (g *DDLGenerator) GenerateEnumType(enumName string) string {
	values := g.enumValues(enumName)
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return fmt.Sprintf("DO $$ BEGIN\n  CREATE TYPE %s AS ENUM (%s);\nEXCEPTION\n  WHEN duplicate_object THEN NULL;\nEND $$;",
		QuoteIdentifier(g.typeMapper.GetEnumTypeName(enumName)),
		strings.Join(quoted, ", "))
}

// GenerateEnumTypes generates the enum types a class needs, in attribute
// order. SQLite has no enum types and gets CHECK constraints instead.
func (g *DDLGenerator) GenerateEnumTypes(class *schema.Class) []string {
	if g.dialect != DialectPostgres {
		return nil
	}
	var names []string
	for _, attr := range class.Attributes.All() {
		rng := g.view.RangeOf(attr)
		if !attr.Multivalued && g.view.IsEnum(rng) && !slices.Contains(names, rng) {
			names = append(names, rng)
		}
	}
	statements := make([]string, len(names))
	for i, name := range names {
		statements[i] = g.GenerateEnumType(name)
	}
	return statements
}

// GenerateStatements returns every statement needed to create storage for
// a class, enum types first.
func (g *DDLGenerator) GenerateStatements(class *schema.Class) ([]string, error) {
	createTable, err := g.GenerateCreateTable(class)
	if err != nil {
		return nil, err
	}
	return append(g.GenerateEnumTypes(class), createTable), nil
}

// GenerateSchema generates complete DDL for a class (enums + table)
func (g *DDLGenerator) GenerateSchema(class *schema.Class) (string, error) {
	statements, err := g.GenerateStatements(class)
	if err != nil {
		return "", err
	}
	return strings.Join(statements, "\n\n") + "\n", nil
}

// GenerateDropStatements generates the statements removing a class's table
// and, for PostgreSQL, its enum types.
func (g *DDLGenerator) GenerateDropStatements(class *schema.Class) []string {
	cascade := ""
	if g.dialect == DialectPostgres {
		cascade = " CASCADE"
	}
	statements := []string{fmt.Sprintf("DROP TABLE IF EXISTS %s%s;", QuoteIdentifier(TableName(class.Name)), cascade)}
	if g.dialect == DialectPostgres {
		for _, attr := range class.Attributes.All() {
			rng := g.view.RangeOf(attr)
			if !attr.Multivalued && g.view.IsEnum(rng) {
				stmt := fmt.Sprintf("DROP TYPE IF EXISTS %s;", QuoteIdentifier(g.typeMapper.GetEnumTypeName(rng)))
				if !slices.Contains(statements, stmt) {
					statements = append(statements, stmt)
				}
			}
		}
	}
	return statements
}
