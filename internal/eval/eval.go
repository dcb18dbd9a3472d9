// Package eval computes derived-field values. A formula is a template
// string whose {{fieldId}} placeholders are substituted with the JSON
// literal of the field's current value, after which the resulting text is
// run through a small embedded expression interpreter. The interpreter
// accepts literals, arithmetic, comparison, logic, the ternary operator
// and a fixed allowlist of functions; nothing else is reachable from a
// formula.
package eval

import (
	"encoding/json"
	"math"
	"regexp"
)

// Result is the outcome of evaluating one formula. Value is "" whenever OK
// is false.
type Result struct {
	OK    bool   `json:"ok"`
	Value any    `json:"value"`
	Err   string `json:"error,omitempty"`
}

var (
	placeholderRe = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	denylistRe    = regexp.MustCompile(`(?i)(while|for|eval|Function|constructor)`)
)

// Evaluate substitutes the formula's placeholders with the JSON literal of
// the corresponding entry in values (absent keys become null), screens the
// substituted text against the legacy unsafe-token denylist, and then
// parses and evaluates it as a single expression. Failures are reported in
// the Result, never as a panic; evaluation has no hidden state, so the
// same inputs always produce the same Result.
func Evaluate(formula string, values map[string]any) Result {
	if formula == "" {
		return Result{OK: true, Value: ""}
	}

	expr := placeholderRe.ReplaceAllStringFunc(formula, func(m string) string {
		key := m[2 : len(m)-2]
		v, ok := values[key]
		if !ok {
			return "null"
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return "null"
		}
		return string(raw)
	})

	// The denylist predates the restricted interpreter and is kept for
	// contract compatibility: it fires even when the token only appears
	// inside a substituted string literal.
	if denylistRe.MatchString(expr) {
		return Result{OK: false, Value: "", Err: "Unsafe expression"}
	}

	n, err := parse(expr)
	if err != nil {
		return Result{OK: false, Value: "", Err: err.Error()}
	}
	v, err := n.eval()
	if err != nil {
		return Result{OK: false, Value: "", Err: err.Error()}
	}
	return Result{OK: true, Value: finalize(v)}
}

// finalize maps non-finite numbers to their display strings so results
// survive a JSON round-trip to clients.
func finalize(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return formatNumber(f)
	}
	return v
}
