// Package style serializes custom map styling rules into the static map
// query grammar.
package style

import "strings"

// InternalPrefix marks operations used by the interactive map only. They
// are never sent to the renderer.
const InternalPrefix = "_"

// Operation is a single styler such as {"saturation", "-100"}.
type Operation struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Rule targets a feature/element pair with an ordered list of operations.
type Rule struct {
	FeatureType string      `json:"featureType"`
	ElementType string      `json:"elementType"`
	Operations  []Operation `json:"operations"`
}

// Sheet is an ordered set of rules. Order matters to the renderer.
type Sheet []Rule

// Serialize renders sheet as a query fragment made of one "&style=" parameter
// per rule, in declaration order.
func Serialize(sheet Sheet) string {
	var b strings.Builder
	for _, rule := range sheet {
		b.WriteString("&style=feature:")
		b.WriteString(rule.FeatureType)
		b.WriteString("|element:")
		b.WriteString(rule.ElementType)
		for _, op := range rule.Operations {
			if strings.HasPrefix(op.Name, InternalPrefix) {
				continue
			}
			value := op.Value
			if op.Name == "hue" {
				value = strings.Replace(value, "#", "0x", 1)
			}
			b.WriteString("|")
			b.WriteString(op.Name)
			b.WriteString(":")
			b.WriteString(value)
		}
	}
	return b.String()
}
