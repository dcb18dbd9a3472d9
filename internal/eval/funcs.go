package eval

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type builtin func(args []any) (any, error)

// builtins is the fixed function allowlist available to formulas. There is
// no way to reach anything outside this table from a formula.
var builtins = map[string]builtin{
	"abs":          numeric1("abs", math.Abs),
	"floor":        numeric1("floor", math.Floor),
	"ceil":         numeric1("ceil", math.Ceil),
	"round":        numeric1("round", math.Round),
	"sqrt":         numeric1("sqrt", math.Sqrt),
	"pow":          fnPow,
	"min":          variadicNumeric("min", math.Min, math.Inf(1)),
	"max":          variadicNumeric("max", math.Max, math.Inf(-1)),
	"len":          fnLen,
	"number":       fnNumber,
	"string":       fnString,
	"upper":        string1("upper", strings.ToUpper),
	"lower":        string1("lower", strings.ToLower),
	"trim":         string1("trim", strings.TrimSpace),
	"concat":       fnConcat,
	"contains":     fnContains,
	"today":        fnToday,
	"now":          fnNow,
	"age":          fnAge,
	"yearsBetween": fnYearsBetween,
	"daysBetween":  fnDaysBetween,
}

func numeric1(name string, fn func(float64) float64) builtin {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		return fn(toNumber(args[0])), nil
	}
}

func string1(name string, fn func(string) string) builtin {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		return fn(toDisplayString(args[0])), nil
	}
}

func variadicNumeric(name string, fn func(float64, float64) float64, seed float64) builtin {
	return func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s expects at least 1 argument", name)
		}
		acc := seed
		for _, a := range args {
			acc = fn(acc, toNumber(a))
		}
		return acc, nil
	}
}

func fnPow(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
	}
	return math.Pow(toNumber(args[0]), toNumber(args[1])), nil
}

func fnLen(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	switch t := args[0].(type) {
	case string:
		return float64(len([]rune(t))), nil
	case []any:
		return float64(len(t)), nil
	case nil:
		return float64(0), nil
	}
	return nil, fmt.Errorf("len expects a string or array, got %s", typeName(args[0]))
}

func fnNumber(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("number expects 1 argument, got %d", len(args))
	}
	return toNumber(args[0]), nil
}

func fnString(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string expects 1 argument, got %d", len(args))
	}
	return toDisplayString(args[0]), nil
}

func fnConcat(args []any) (any, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(toDisplayString(a))
	}
	return sb.String(), nil
}

func fnContains(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
	}
	switch t := args[0].(type) {
	case string:
		return strings.Contains(t, toDisplayString(args[1])), nil
	case []any:
		for _, e := range t {
			if looseEquals(e, args[1]) {
				return true, nil
			}
		}
		return false, nil
	}
	return nil, fmt.Errorf("contains expects a string or array, got %s", typeName(args[0]))
}

func fnToday(args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("today expects no arguments")
	}
	return timeNow().Format("2006-01-02"), nil
}

func fnNow(args []any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("now expects no arguments")
	}
	return float64(timeNow().UnixMilli()), nil
}

func fnAge(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("age expects 1 argument, got %d", len(args))
	}
	birth, err := parseDate(args[0])
	if err != nil {
		return nil, err
	}
	return float64(fullYearsBetween(birth, timeNow())), nil
}

func fnYearsBetween(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("yearsBetween expects 2 arguments, got %d", len(args))
	}
	from, err := parseDate(args[0])
	if err != nil {
		return nil, err
	}
	to, err := parseDate(args[1])
	if err != nil {
		return nil, err
	}
	return float64(fullYearsBetween(from, to)), nil
}

func fnDaysBetween(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("daysBetween expects 2 arguments, got %d", len(args))
	}
	from, err := parseDate(args[0])
	if err != nil {
		return nil, err
	}
	to, err := parseDate(args[1])
	if err != nil {
		return nil, err
	}
	return math.Floor(to.Sub(from).Hours() / 24), nil
}

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", toDisplayString(v))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func fullYearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return -fullYearsBetween(to, from)
	}
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
