package docs

import "strings"

// ExampleForType returns an example value for an Edm primitive type, used
// for key parameters. Non-primitive types have no example.
func ExampleForType(edmType string) interface{} {
	if !strings.HasPrefix(edmType, "Edm.") {
		return nil
	}

	switch strings.TrimPrefix(edmType, "Edm.") {
	case "String":
		return "example"
	case "Guid":
		return "550e8400-e29b-41d4-a716-446655440000"

	case "Byte", "SByte", "Int16", "Int32", "Int64":
		return 42
	case "Single", "Double":
		return 3.14
	case "Decimal":
		return "99.99"

	case "Boolean":
		return true

	case "Date":
		return "2024-01-31"
	case "TimeOfDay":
		return "13:45:00"
	case "DateTimeOffset":
		return "2024-01-31T13:45:00Z"
	case "Duration":
		return "P1DT2H"

	case "Binary":
		return "base64encodedcontent=="

	default:
		return nil
	}
}
