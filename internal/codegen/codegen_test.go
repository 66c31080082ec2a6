package codegen

import (
	"testing"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

const shopSchema = `
id: https://example.org/shop
name: shop
default_range: string
enums:
  Status:
    permissible_values:
      open:
      shipped:
      "won't ship":
classes:
  Entity:
    abstract: true
    attributes:
      id:
        identifier: true
        required: true
  Customer:
    is_a: Entity
    description: Somebody who buys things
    attributes:
      fullName:
        required: true
      age:
        range: integer
  Order:
    attributes:
      placedAt:
        range: datetime
      orderId:
        identifier: true
        range: uriorcurie
      status:
        range: Status
        required: true
      quantity:
        range: integer
        required: true
      price:
        range: float
      paid:
        range: boolean
      tags:
        multivalued: true
      customer:
        range: Customer
      lines:
        range: Line
        multivalued: true
        inlined_as_list: true
  Line:
    attributes:
      sku:
        required: true
`

func shopView(t *testing.T) *schema.View {
	t.Helper()
	s, err := schema.Parse([]byte(shopSchema))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	view, err := schema.NewView(s)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	return view
}

func shopClass(t *testing.T, view *schema.View, name string) *schema.Class {
	t.Helper()
	c, ok := view.Class(name)
	if !ok {
		t.Fatalf("class %s not found", name)
	}
	return c
}
