package content

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StepValueKind discriminates the closed set of value shapes a workflow step
// field may carry.
type StepValueKind string

const (
	KindString     StepValueKind = "string"
	KindNumber     StepValueKind = "number"
	KindBool       StepValueKind = "bool"
	KindStringList StepValueKind = "stringList"
)

// StepValue is a closed tagged variant for workflow step inputs, outputs,
// and validation parameters: a string, a number, a boolean, or a list of
// strings. On the wire (YAML datasets, JSON payloads) it is encoded as the
// bare value; the kind is inferred on decode.
type StepValue struct {
	Kind StepValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// StringValue returns a string-kinded StepValue.
func StringValue(s string) StepValue { return StepValue{Kind: KindString, Str: s} }

// NumberValue returns a number-kinded StepValue.
func NumberValue(n float64) StepValue { return StepValue{Kind: KindNumber, Num: n} }

// BoolValue returns a bool-kinded StepValue.
func BoolValue(b bool) StepValue { return StepValue{Kind: KindBool, Bool: b} }

// ListValue returns a string-list-kinded StepValue.
func ListValue(items ...string) StepValue { return StepValue{Kind: KindStringList, List: items} }

// String renders the value for display.
func (v StepValue) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return fmt.Sprintf("%g", v.Num)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindStringList:
		return fmt.Sprintf("%v", v.List)
	}
	return ""
}

// MarshalJSON encodes the bare value without a kind wrapper.
func (v StepValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindStringList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	}
	return nil, fmt.Errorf("marshal step value: unknown kind %q", v.Kind)
}

// UnmarshalJSON infers the kind from the JSON shape.
func (v *StepValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListValue(list...)
		return nil
	}
	return fmt.Errorf("unmarshal step value: unsupported shape %s", string(data))
}

// MarshalYAML encodes the bare value without a kind wrapper.
func (v StepValue) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindNumber:
		return v.Num, nil
	case KindBool:
		return v.Bool, nil
	case KindStringList:
		return v.List, nil
	}
	return nil, fmt.Errorf("marshal step value: unknown kind %q", v.Kind)
}

// UnmarshalYAML infers the kind from the YAML node shape.
func (v *StepValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if node.Tag == "!!bool" {
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = BoolValue(b)
			return nil
		}
		if node.Tag == "!!int" || node.Tag == "!!float" {
			var n float64
			if err := node.Decode(&n); err != nil {
				return err
			}
			*v = NumberValue(n)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("unmarshal step value list: %w", err)
		}
		*v = ListValue(list...)
		return nil
	}
	return fmt.Errorf("unmarshal step value: unsupported node kind %d", node.Kind)
}
