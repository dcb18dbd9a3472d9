package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formforge/formforge/internal/eval"
)

var evalSets []string

// newEvalCommand evaluates a formula against ad-hoc field values, the
// same way derived fields are computed in a live preview.
func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <formula>",
		Short: "Evaluate a derived-field formula",
		Example: `  formctl eval '{{price}} * {{qty}}' --set price=9.5 --set qty=3
  formctl eval 'upper({{name}})' --set name='"ada"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := map[string]any{}
			for _, pair := range evalSets {
				key, raw, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("--set %q is not key=value", pair)
				}
				// JSON values pass through typed; anything else is a string.
				var v any
				if err := json.Unmarshal([]byte(raw), &v); err != nil {
					v = raw
				}
				values[key] = v
			}

			res := eval.Evaluate(args[0], values)
			if !res.OK {
				return fmt.Errorf("%s", res.Err)
			}
			out, err := json.Marshal(res.Value)
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&evalSets, "set", nil,
		"Field value as key=value; value is parsed as JSON when possible")
	return cmd
}
