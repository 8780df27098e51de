package schema

type FieldType int

const (
	Any FieldType = iota
	String
	Integer
	Boolean
	StringList
	IntegerList
	ObjectList
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case StringList:
		return "list of strings"
	case IntegerList:
		return "list of integers"
	case ObjectList:
		return "list of objects"
	default:
		return "any"
	}
}

// Field describes one key of a request. Rules uses go-playground/validator
// tag syntax and runs against the coerced value.
type Field struct {
	Type     FieldType
	Required bool
	ReadOnly bool
	// CreateOnly fields are accepted on create and rejected on replace/update.
	CreateOnly bool
	UpdateOnly bool
	Rules      string
	// Items validates each element of an ObjectList.
	Items Schema
}

type Schema map[string]Field

func (s Schema) with(extra Schema) Schema {
	out := make(Schema, len(s)+len(extra))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

var (
	isInteger         = Field{Type: Integer}
	isUnsigned        = Field{Type: Integer, Rules: "min=0"}
	isLimit           = Field{Type: Integer, Rules: "min=0,max=100"}
	isRequiredInteger = Field{Type: Integer, Required: true}
	isRequiredUint    = Field{Type: Integer, Required: true, Rules: "min=0"}
	isBoolean         = Field{Type: Boolean}
	isText            = Field{Type: String}
	isString          = Field{Type: String, Rules: "min=1"}
	isRequiredString  = Field{Type: String, Required: true, Rules: "min=1"}
	isPassword        = Field{Type: String, Required: true, Rules: "min=8,max=128"}
	isReadOnly        = Field{ReadOnly: true}
)
