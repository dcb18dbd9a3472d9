package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/domain/schema"
)

var exportFormat string

func newFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Work with the saved form collection",
	}
	cmd.AddCommand(newFormsListCommand())
	cmd.AddCommand(newFormsShowCommand())
	cmd.AddCommand(newFormsRemoveCommand())
	cmd.AddCommand(newFormsExportCommand())
	cmd.AddCommand(newFormsImportCommand())
	return cmd
}

func newFormsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List saved forms, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewFormService(openRepos())
			forms, err := svc.ListForms()
			if err != nil {
				return err
			}
			if len(forms) == 0 {
				cmd.Println("No saved forms")
				return nil
			}
			for _, f := range forms {
				created := time.UnixMilli(f.CreatedAt).Format("2006-01-02 15:04")
				cmd.Printf("%s  %-24s  %2d fields  %s\n", f.ID, f.Name, len(f.Fields), created)
			}
			return nil
		},
	}
}

func newFormsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one saved form as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewFormService(openRepos())
			form, err := svc.GetForm(args[0])
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(form, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(raw))
			return nil
		},
	}
}

func newFormsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewFormService(openRepos())
			if err := svc.DeleteForm(args[0]); err != nil {
				return err
			}
			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}

func newFormsExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole collection to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewFormService(openRepos())
			forms, err := svc.ListForms()
			if err != nil {
				return err
			}

			var raw []byte
			switch exportFormat {
			case "json":
				raw, err = json.MarshalIndent(forms, "", "  ")
			case "yaml":
				raw, err = marshalYAML(forms)
			default:
				return fmt.Errorf("unknown format %q, want json or yaml", exportFormat)
			}
			if err != nil {
				return err
			}

			if len(args) == 0 {
				cmd.Print(string(raw))
				return nil
			}
			return os.WriteFile(args[0], raw, 0o644)
		},
	}
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format: json or yaml")
	return cmd
}

func newFormsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collection with the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			forms, err := decodeForms(raw)
			if err != nil {
				return err
			}

			svc := application.NewFormService(openRepos())
			if err := svc.ReplaceAll(forms); err != nil {
				return err
			}
			cmd.Printf("Imported %d forms\n", len(forms))
			return nil
		},
	}
}

// marshalYAML renders through a JSON round-trip so the yaml output uses
// the same field names as the persisted JSON, not Go struct names.
func marshalYAML(forms []schema.PersistedForm) ([]byte, error) {
	raw, err := json.Marshal(forms)
	if err != nil {
		return nil, err
	}
	var generic []interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// decodeForms accepts either JSON or YAML. YAML input is normalized back
// through JSON so nested maps regain string keys.
func decodeForms(raw []byte) ([]schema.PersistedForm, error) {
	forms := []schema.PersistedForm{}
	if err := json.Unmarshal(raw, &forms); err == nil {
		return forms, nil
	}

	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, errors.New("file is neither a JSON nor a YAML form collection")
	}
	jsonRaw, err := json.Marshal(stringifyKeys(generic))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonRaw, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// stringifyKeys rewrites yaml.v2's map[interface{}]interface{} values
// into map[string]interface{} so they can pass through encoding/json.
func stringifyKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = stringifyKeys(item)
		}
		return out
	case []interface{}:
		for i, item := range val {
			val[i] = stringifyKeys(item)
		}
		return val
	default:
		return val
	}
}
