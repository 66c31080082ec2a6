package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Class", "Parent", "Leaf"}, &TableOptions{NoColor: true})

	table.AddRow("Animal", "", "no")
	table.AddRow("Dog", "Animal", "yes")
	table.AddRow("Person")

	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	expected := []string{
		"Class   Parent  Leaf",
		"──────  ──────  ────",
		"Animal          no",
		"Dog     Animal  yes",
		"Person          ",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Table rendered %d lines, want %d:\n%s", len(lines), len(expected), buf.String())
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{}, &TableOptions{NoColor: true})
	table.AddRow("ignored")
	table.Render()

	if buf.Len() != 0 {
		t.Errorf("Expected empty output for table without headers, got: %q", buf.String())
	}
}

func TestTableUnicodeWidth(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Name", "N"}, nil)
	table.AddRow("Straße", "1")
	table.Render()

	if !strings.Contains(buf.String(), "Straße  1") {
		t.Errorf("Table should pad by runes, got:\n%s", buf.String())
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kvTable := NewKeyValueTable(&buf, true)
	kvTable.AddRow("Classes", "4")
	kvTable.AddRow("Enums", "1")
	kvTable.Render()

	expected := "Classes: 4\nEnums:   1\n"
	if buf.String() != expected {
		t.Errorf("KeyValueTable output = %q, want %q", buf.String(), expected)
	}
}

func TestKeyValueTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewKeyValueTable(&buf, true).Render()

	if buf.Len() != 0 {
		t.Errorf("Expected empty output for empty KeyValueTable, got: %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	section := NewSection(&buf, "Cycles", true)
	section.AddLine("Person -> Animal -> Person")
	section.Render()

	if buf.String() != "Cycles\n  Person -> Animal -> Person\n\n" {
		t.Errorf("Section output = %q", buf.String())
	}
}

func TestSectionEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewSection(&buf, "Cycles", true).Render()

	if buf.String() != "Cycles\n  (none)\n\n" {
		t.Errorf("Section output = %q", buf.String())
	}
}
