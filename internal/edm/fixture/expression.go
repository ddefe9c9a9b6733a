package fixture

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/edmoas/internal/edm"
)

// Expression decodes an annotation value:
//
//	true / 42 / "text"            constants
//	[a, b]                        collection
//	{enum: NS.Type/Member}        enum member, or a list of members for flags
//	{navigation_path: Friends}    navigation property path
//	{property_path: Name}         property path
//	{Field: value, ...}           record, fields kept in order
//
// A missing or null value is a tag annotation and decodes to nil.
func Expression(node *yaml.Node) (edm.Expression, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case 0:
		return nil, nil

	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return Expression(node.Content[0])

	case yaml.AliasNode:
		return Expression(node.Alias)

	case yaml.ScalarNode:
		return scalar(node)

	case yaml.SequenceNode:
		coll := make(edm.Collection, 0, len(node.Content))
		for _, item := range node.Content {
			expr, err := Expression(item)
			if err != nil {
				return nil, err
			}
			coll = append(coll, expr)
		}
		return coll, nil

	case yaml.MappingNode:
		if expr, ok, err := special(node); ok || err != nil {
			return expr, err
		}
		fields := make([]edm.PropertyValue, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := Expression(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, edm.Field(node.Content[i].Value, value))
		}
		return edm.NewRecord(fields...), nil
	}
	return nil, fmt.Errorf("line %d: unsupported value", node.Line)
}

func scalar(node *yaml.Node) (edm.Expression, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return edm.BoolConstant(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return edm.IntConstant(i), nil
	case "!!str":
		return edm.StringConstant(node.Value), nil
	}
	return nil, fmt.Errorf("line %d: unsupported scalar %s", node.Line, node.ShortTag())
}

// special decodes the single-key mappings that stand for enum members and
// paths
func special(node *yaml.Node) (edm.Expression, bool, error) {
	if len(node.Content) != 2 {
		return nil, false, nil
	}
	key, value := node.Content[0].Value, node.Content[1]

	switch key {
	case "enum":
		var members []string
		switch value.Kind {
		case yaml.ScalarNode:
			members = []string{value.Value}
		case yaml.SequenceNode:
			if err := value.Decode(&members); err != nil {
				return nil, true, err
			}
		default:
			return nil, true, fmt.Errorf("line %d: enum members must be a string or a list", value.Line)
		}
		return edm.EnumMembers(members...), true, nil

	case "navigation_path", "property_path":
		if value.Kind != yaml.ScalarNode {
			return nil, true, fmt.Errorf("line %d: %s must be a string", value.Line, key)
		}
		if key == "navigation_path" {
			return edm.NavigationPropertyPath(value.Value), true, nil
		}
		return edm.PropertyPath(value.Value), true, nil
	}
	return nil, false, nil
}
