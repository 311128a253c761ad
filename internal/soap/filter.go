// Package soap builds and sends requests to the SOAP partner API.
package soap

import (
	"encoding/xml"
	"fmt"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// LogicalOperator joins the operands of a ComplexFilterPart.
type LogicalOperator string

// LogicalAnd is the only operator the compiler emits.
const LogicalAnd LogicalOperator = "AND"

// Filter part kinds, written as the xsi:type of the element.
const (
	SimpleFilterPartType  = "SimpleFilterPart"
	ComplexFilterPartType = "ComplexFilterPart"
)

// FilterPart is a node of a compiled filter tree.
type FilterPart interface {
	xml.Marshaler
	Kind() string
}

// SimpleFilterPart is a leaf predicate.
type SimpleFilterPart struct {
	Property       string `xml:"Property"`
	SimpleOperator string `xml:"SimpleOperator"`
	Value          string `xml:"Value"`
}

// ComplexFilterPart combines a leaf with the rest of the tree.
type ComplexFilterPart struct {
	LeftOperand     SimpleFilterPart
	LogicalOperator LogicalOperator
	RightOperand    FilterPart
}

// Kind implements FilterPart.
func (p SimpleFilterPart) Kind() string {
	return SimpleFilterPartType
}

// Kind implements FilterPart.
func (p ComplexFilterPart) Kind() string {
	return ComplexFilterPartType
}

// MarshalXML writes the leaf under start, tagged with its xsi:type.
func (p SimpleFilterPart) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type leaf SimpleFilterPart

	start.Attr = append(start.Attr, typeAttr(SimpleFilterPartType))

	return e.EncodeElement(leaf(p), start)
}

// MarshalXML writes the node under start, tagged with its xsi:type.
func (p ComplexFilterPart) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if p.RightOperand == nil {
		return fmt.Errorf("marshaling %s: right operand is missing", ComplexFilterPartType)
	}

	start.Attr = append(start.Attr, typeAttr(ComplexFilterPartType))

	err := e.EncodeToken(start)
	if err != nil {
		return err
	}

	err = e.EncodeElement(p.LeftOperand, xml.StartElement{Name: xml.Name{Local: "LeftOperand"}})
	if err != nil {
		return err
	}

	err = e.EncodeElement(p.LogicalOperator, xml.StartElement{Name: xml.Name{Local: "LogicalOperator"}})
	if err != nil {
		return err
	}

	err = e.EncodeElement(p.RightOperand, xml.StartElement{Name: xml.Name{Local: "RightOperand"}})
	if err != nil {
		return err
	}

	return e.EncodeToken(start.End())
}

// CompileFilters folds filters into a right-associated AND tree. The first
// filter is always the left leaf; the remaining filters compile recursively
// into the right operand. An empty slice compiles to nil.
func CompileFilters(filters []sfmc.SoapFilter) FilterPart {
	switch len(filters) {
	case 0:
		return nil
	case 1:
		return leafOf(filters[0])
	default:
		return ComplexFilterPart{
			LeftOperand:     leafOf(filters[0]),
			LogicalOperator: LogicalAnd,
			RightOperand:    CompileFilters(filters[1:]),
		}
	}
}

func leafOf(filter sfmc.SoapFilter) SimpleFilterPart {
	return SimpleFilterPart{
		Property:       filter.ColumnName,
		SimpleOperator: string(filter.Operator),
		Value:          filter.Value,
	}
}

func typeAttr(kind string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: kind}
}
