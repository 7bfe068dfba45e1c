// Package datatype defines the canonical column data types used by schema
// values. Every column type, no matter which driver or descriptor form it
// came from, is coerced into a Type value via Parse.
package datatype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownType is wrapped by Parse when a descriptor cannot be coerced.
var ErrUnknownType = errors.New("unknown data type")

// Kind enumerates the canonical type families.
type Kind int

const (
	Unknown Kind = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Decimal
	String
	Binary
	Date
	Time
	Timestamp
	JSON
	UUID
)

var kindNames = map[Kind]string{
	Unknown:   "unknown",
	Boolean:   "boolean",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Float32:   "float32",
	Float64:   "float64",
	Decimal:   "decimal",
	String:    "string",
	Binary:    "binary",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	JSON:      "json",
	UUID:      "uuid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Type is a canonical column data type. It is a comparable value: two types
// are the same type iff their fields are equal, so Type works as a map key.
// Precision and Scale are only meaningful for Decimal and are zero elsewhere.
type Type struct {
	Kind      Kind
	Precision int
	Scale     int
}

// String renders the canonical descriptor form, e.g. "int64" or
// "decimal(10,2)". Parse accepts every string this method produces.
func (t Type) String() string {
	if t.Kind == Decimal && t.Precision > 0 {
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	}
	return t.Kind.String()
}

// New returns the canonical Type for a bare kind.
func New(k Kind) Type { return Type{Kind: k} }

// NewDecimal returns a decimal Type with the given precision and scale.
func NewDecimal(precision, scale int) Type {
	return Type{Kind: Decimal, Precision: precision, Scale: scale}
}

// aliases maps lower-cased descriptor names to kinds. Canonical names are
// included so Parse(t.String()) round-trips; the rest are the SQL spellings
// the database drivers report.
var aliases = map[string]Kind{
	"unknown": Unknown,

	"boolean": Boolean,
	"bool":    Boolean,

	"int8":    Int8,
	"tinyint": Int8,

	"int16":    Int16,
	"smallint": Int16,

	"int32":     Int32,
	"int":       Int32,
	"integer":   Int32,
	"mediumint": Int32,

	"int64":  Int64,
	"bigint": Int64,

	"float32": Float32,
	"real":    Float32,

	"float64":          Float64,
	"float":            Float64,
	"double":           Float64,
	"double precision": Float64,

	"decimal": Decimal,
	"numeric": Decimal,

	"string":            String,
	"text":              String,
	"tinytext":          String,
	"mediumtext":        String,
	"longtext":          String,
	"char":              String,
	"character":         String,
	"varchar":           String,
	"character varying": String,
	"bpchar":            String,
	"name":              String,
	"clob":              String,

	"binary":    Binary,
	"varbinary": Binary,
	"blob":      Binary,
	"tinyblob":  Binary,
	"longblob":  Binary,
	"bytea":     Binary,

	"date": Date,

	"time":                   Time,
	"time without time zone": Time,
	"time with time zone":    Time,

	"timestamp":                   Timestamp,
	"timestamptz":                 Timestamp,
	"timestamp without time zone": Timestamp,
	"timestamp with time zone":    Timestamp,
	"datetime":                    Timestamp,

	"json":  JSON,
	"jsonb": JSON,

	"uuid": UUID,
}

// Parse coerces a type descriptor into its canonical Type. Descriptors are
// case-insensitive and may carry parenthesised parameters: decimal keeps its
// precision and scale, while length and fractional-second parameters on
// other types (varchar(255), timestamp(3)) are dropped because they do not
// change the canonical type. Unrecognised descriptors fail with an error
// wrapping ErrUnknownType.
func Parse(descriptor string) (Type, error) {
	s := strings.ToLower(strings.TrimSpace(descriptor))
	if s == "" {
		return Type{}, fmt.Errorf("%w: empty descriptor", ErrUnknownType)
	}

	base, params, err := splitParams(s)
	if err != nil {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, descriptor)
	}

	kind, ok := aliases[base]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, descriptor)
	}

	if kind == Decimal && len(params) > 0 {
		precision := params[0]
		scale := 0
		if len(params) > 1 {
			scale = params[1]
		}
		return NewDecimal(precision, scale), nil
	}
	return New(kind), nil
}

// MustParse is Parse for descriptors the caller knows are valid; it panics
// on error. Intended for literals in tests and static tables.
func MustParse(descriptor string) Type {
	t, err := Parse(descriptor)
	if err != nil {
		panic(err)
	}
	return t
}

// splitParams separates "decimal(10,2)" into base "decimal" and params
// [10, 2]. A descriptor with no parameter list returns nil params.
func splitParams(s string) (string, []int, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("unterminated parameter list")
	}

	base := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	var params []int
	for _, part := range strings.Split(inner, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", nil, fmt.Errorf("bad parameter %q", part)
		}
		params = append(params, n)
	}
	return base, params, nil
}
