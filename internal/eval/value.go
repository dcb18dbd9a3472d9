package eval

import (
	"math"
	"strconv"
	"strings"
)

// The coercion rules below mirror the loose-typing behavior formulas were
// originally written against: "5" + 3 concatenates to "53", "5" * 2 is 10,
// and so on. Substituted placeholder values arrive as the JSON scalar
// types (nil, bool, float64, string, []any).

func toNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case float64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case []any:
		if len(t) == 0 {
			return 0
		}
		if len(t) == 1 {
			return toNumber(t[0])
		}
		return math.NaN()
	}
	return math.NaN()
}

func toDisplayString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if e == nil {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, toDisplayString(e))
		}
		return strings.Join(parts, ",")
	}
	return ""
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case []any:
		return true
	}
	return false
}

// add follows the string-wins rule: if either side is a string or an
// array, the result is concatenation of display strings.
func add(l, r any) any {
	if isStringish(l) || isStringish(r) {
		return toDisplayString(l) + toDisplayString(r)
	}
	return toNumber(l) + toNumber(r)
}

func isStringish(v any) bool {
	switch v.(type) {
	case string, []any:
		return true
	}
	return false
}

func modulo(l, r float64) float64 {
	if r == 0 {
		return math.NaN()
	}
	return math.Mod(l, r)
}

func looseEquals(l, r any) bool {
	if l == nil && r == nil {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	ls, lIsStr := l.(string)
	rs, rIsStr := r.(string)
	if lIsStr && rIsStr {
		return ls == rs
	}
	lb, lIsBool := l.(bool)
	rb, rIsBool := r.(bool)
	if lIsBool && rIsBool {
		return lb == rb
	}
	// mixed scalar types compare numerically
	return toNumber(l) == toNumber(r)
}

func strictEquals(l, r any) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	switch lt := l.(type) {
	case bool:
		rt, ok := r.(bool)
		return ok && lt == rt
	case float64:
		rt, ok := r.(float64)
		return ok && lt == rt
	case string:
		rt, ok := r.(string)
		return ok && lt == rt
	}
	return false
}

func compare(op string, l, r any) bool {
	ls, lIsStr := l.(string)
	rs, rIsStr := r.(string)
	if lIsStr && rIsStr {
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
		return false
	}
	ln, rn := toNumber(l), toNumber(r)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return false
	}
	switch op {
	case "<":
		return ln < rn
	case "<=":
		return ln <= rn
	case ">":
		return ln > rn
	case ">=":
		return ln >= rn
	}
	return false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	}
	return "value"
}
