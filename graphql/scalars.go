package graphql

import (
	"encoding"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var duration = newStringScalar(
	"Duration", "The `Duration` scalar type represents a length of time as a string such as \"1h30m\".",
	serializeDuration, deserializeDuration)

var timestamp = newStringScalar(
	"Timestamp", "The `Timestamp` scalar type represents a DateTime."+
		" The Timestamp is serialized as an RFC 3339 quoted string",
	serializeTimestamp, identityFn)

var bigint = newStringScalar(
	"BigInt", "The `BigInt` scalar type represents a 64-bit signed integer as a string.",
	serializeBigInt, identityFn)

// newStringScalar Creates an string-based scalar with custom serialization functions
func newStringScalar(
	name string, description string, serializeFn graphql.SerializeFn, deserializeFn graphql.ParseValueFn,
) *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:         name,
		Description:  description,
		Serialize:    serializeFn,
		ParseValue:   deserializeFn,
		ParseLiteral: parseLiteralFromStringHandler(deserializeFn),
	})
}

func identityFn(value interface{}) interface{} {
	return value
}

func parseLiteralFromStringHandler(parser graphql.ParseValueFn) graphql.ParseLiteralFn {
	return func(valueAST ast.Value) interface{} {
		switch valueAST := valueAST.(type) {
		case *ast.StringValue:
			return parser(valueAST.Value)
		}
		return nil
	}
}

// Durations are validated here but stay strings; the resolvers decode them
// with mapstructure.
func deserializeDuration(value interface{}) interface{} {
	switch value := value.(type) {
	case string:
		if _, err := time.ParseDuration(value); err != nil {
			return nil
		}
		return value
	case *string:
		if value == nil {
			return nil
		}
		return deserializeDuration(*value)
	default:
		return nil
	}
}

func serializeDuration(value interface{}) interface{} {
	switch value := value.(type) {
	case time.Duration:
		if value == 0 {
			return nil
		}
		return value.String()
	case *durationpb.Duration:
		if value == nil {
			return nil
		}
		return value.AsDuration().String()
	case string:
		return value
	default:
		return nil
	}
}

func serializeTimestamp(value interface{}) interface{} {
	switch value := value.(type) {
	case *timestamppb.Timestamp:
		if value == nil {
			return nil
		}
		return marshalText(value.AsTime())
	case time.Time:
		return marshalText(value)
	default:
		return nil
	}
}

func serializeBigInt(value interface{}) interface{} {
	switch value := value.(type) {
	case int64:
		return strconv.FormatInt(value, 10)
	case string:
		return value
	default:
		return nil
	}
}

func marshalText(value encoding.TextMarshaler) *string {
	buff, err := value.MarshalText()
	if err != nil {
		return nil
	}

	var s = string(buff)
	return &s
}
