package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType defines the expected type for a configuration value.
type ValueType int

const (
	TypeInt ValueType = iota
	TypeFloat
	TypeString
	TypeEnum
)

// String returns the string representation of ValueType.
func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// KeySchema defines a known configuration key with its expected type and
// validation rules.
type KeySchema struct {
	Path          string                  // Dotted key path (e.g., "hmat.tolerance")
	Type          ValueType               // Expected value type for validation
	AllowedValues []string                // Valid values for enum types (empty for non-enums)
	Description   string                  // Human-readable description for help text
	Default       interface{}             // Default value
	Check         func(interface{}) error // Optional range rule applied after type validation
}

// Range rules. A value that passes here will also pass the evaluation-options
// validation on the next load, so 'config set' cannot write an unusable file.

func positiveOrAutoInt(v interface{}) error {
	n := v.(int)
	if n > 0 || n == -1 {
		return nil
	}
	return fmt.Errorf("must be positive or -1 (automatic), got %d", n)
}

func positiveInt(v interface{}) error {
	if n := v.(int); n <= 0 {
		return fmt.Errorf("must be positive, got %d", n)
	}
	return nil
}

func positiveFloat(v interface{}) error {
	if f := v.(float64); f <= 0 {
		return fmt.Errorf("must be positive, got %g", f)
	}
	return nil
}

// KnownKeys is the registry of all known configuration keys with their schemas.
// Keys outside this registry are still loaded and passed through the parameter
// list untouched; the registry only gates 'bempot config set'.
var KnownKeys = map[string]KeySchema{
	"evaluationMode": {
		Path:          "evaluationMode",
		Type:          TypeEnum,
		AllowedValues: []string{"dense", "hmat"},
		Description:   "Evaluation mode for potential operators",
		Default:       "dense",
	},
	"maxThreadCount": {
		Path:        "maxThreadCount",
		Type:        TypeInt,
		Description: "Max threads during evaluation (-1 = automatic)",
		Default:     -1,
		Check:       positiveOrAutoInt,
	},
	"verbosityLevel": {
		Path:          "verbosityLevel",
		Type:          TypeEnum,
		AllowedValues: []string{"low", "default", "high"},
		Description:   "Logging verbosity of the evaluation pipeline",
		Default:       "default",
	},
	"hmat.tolerance": {
		Path:        "hmat.tolerance",
		Type:        TypeFloat,
		Description: "ACA compression tolerance for hmat assembly",
		Default:     1e-4,
		Check:       positiveFloat,
	},
	"hmat.eta": {
		Path:        "hmat.eta",
		Type:        TypeFloat,
		Description: "Block admissibility parameter for hmat assembly",
		Default:     1.2,
		Check:       positiveFloat,
	},
	"hmat.leafSize": {
		Path:        "hmat.leafSize",
		Type:        TypeInt,
		Description: "Max points per undivided cluster in hmat assembly",
		Default:     32,
		Check:       positiveInt,
	},
	"hmat.maxRank": {
		Path:        "hmat.maxRank",
		Type:        TypeInt,
		Description: "Rank cap per compressed block in hmat assembly",
		Default:     64,
		Check:       positiveInt,
	},
}

// ErrUnknownKey is returned when trying to set an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (KeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return KeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema KeySchema, value string) (ParsedValue, error) {
	var (
		parsed ParsedValue
		err    error
	)
	switch schema.Type {
	case TypeInt:
		parsed, err = parseIntValue(value)
	case TypeFloat:
		parsed, err = parseFloatValue(value)
	case TypeEnum:
		parsed, err = parseEnumValue(schema, value)
	case TypeString:
		parsed = ParsedValue{Raw: value, Parsed: value, Type: TypeString}
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
	if err != nil {
		return ParsedValue{}, err
	}
	if schema.Check != nil {
		if err := schema.Check(parsed.Parsed); err != nil {
			return ParsedValue{}, fmt.Errorf("%s: %w", schema.Path, err)
		}
	}
	return parsed, nil
}

// parseIntValue parses and validates an integer value.
func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parseFloatValue parses and validates a float value.
func parseFloatValue(value string) (ParsedValue, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid float: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: f, Type: TypeFloat}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema KeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
