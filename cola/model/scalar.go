package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/parse"
)

// lowerScalar decodes a parsed FieldValue into a typed Scalar. Integer
// literals that overflow int64 fail per spec.md §3.1.
func lowerScalar(v parse.FieldValue) (Scalar, error) {
	switch v.Kind {
	case parse.StringValue:
		return Scalar{Kind: String, Str: lexer.DecodeStringLiteral(v.Raw)}, nil

	case parse.BoolValue:
		return Scalar{Kind: Boolean, Bool: v.Bool}, nil

	case parse.NumberValue:
		if strings.Contains(v.Raw, ".") {
			f, err := strconv.ParseFloat(v.Raw, 64)
			if err != nil {
				return Scalar{}, fmt.Errorf("invalid float literal %q: %s", v.Raw, err)
			}
			return Scalar{Kind: Float, Float64: f}, nil
		}
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return Scalar{}, fmt.Errorf("integer literal %q does not fit in 64 bits", v.Raw)
		}
		return Scalar{Kind: Integer, Int: n}, nil

	default:
		return Scalar{}, fmt.Errorf("unknown field value kind")
	}
}
