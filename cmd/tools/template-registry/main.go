// cmd/tools/template-registry/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"legal-docs-workers/internal/docx"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/pkg/registry"
)

var registryPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "template-registry",
		Short: "Maintain the DOCX template registry",
		Long: `Maintain the registry that maps each document type to its DOCX template.

Examples:
  template-registry add --id acta_consejo --display-name "Acta de Consejo" --file acta_consejo.docx
  template-registry update --id acta_consejo --field status --value active
  template-registry list
  template-registry validate --templates-dir ./plantillas`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&registryPath, "path", "configs/template-registry.json", "Path to registry file")

	root.AddCommand(addCmd())
	root.AddCommand(updateCmd())
	root.AddCommand(listCmd())
	root.AddCommand(validateCmd())
	return root
}

func addCmd() *cobra.Command {
	var entry registry.TemplateEntry
	var tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a template to the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := documents.Lookup(entry.ID); err != nil {
				return fmt.Errorf("%s is not a supported document type (%s)", entry.ID, strings.Join(documents.Types(), ", "))
			}
			if tags != "" {
				entry.Tags = strings.Split(tags, ",")
			}

			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				if !os.IsNotExist(err) {
					return fmt.Errorf("failed to load registry: %w", err)
				}
				reg = &registry.TemplateRegistry{Version: "1.0.0", Templates: []registry.TemplateEntry{}}
			}
			if err := reg.Add(entry); err != nil {
				return err
			}
			if err := registry.SaveRegistry(reg, registryPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added template: %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&entry.ID, "id", "", "Document type (e.g., acta_consejo)")
	cmd.Flags().StringVar(&entry.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&entry.Description, "description", "", "Description")
	cmd.Flags().StringVar(&entry.File, "file", "", "Template file, relative to the templates directory")
	cmd.Flags().StringVar(&entry.Version, "version", "1.0.0", "Version")
	cmd.Flags().StringVar(&entry.Status, "status", registry.StatusDraft, "Status (draft, active, retired)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("display-name")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func updateCmd() *cobra.Command {
	var id, field, value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of a registered template",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			entry, ok := reg.Lookup(id)
			if !ok {
				return fmt.Errorf("template with ID %s not found", id)
			}

			switch field {
			case "status":
				entry.Status = value
			case "version":
				entry.Version = value
			case "displayName":
				entry.DisplayName = value
			case "description":
				entry.Description = value
			case "file":
				entry.File = value
			case "tags":
				entry.Tags = strings.Split(value, ",")
			default:
				return fmt.Errorf("unknown field: %s", field)
			}

			if err := reg.Validate(nil); err != nil {
				return err
			}
			if err := registry.SaveRegistry(reg, registryPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated template %s, field %s to %s\n", id, field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Document type to update")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (status, version, displayName, description, file, tags)")
	cmd.Flags().StringVar(&value, "value", "", "New value for the field")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registry %s (version %s, updated %s)\n", registryPath, reg.Version, reg.LastUpdated)
			for _, t := range reg.Templates {
				status := t.Status
				if status == "" {
					status = registry.StatusActive
				}
				fmt.Fprintf(out, "  %-24s %-8s %-8s %s\n", t.ID, t.Version, status, t.File)
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	var templatesDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry and, optionally, the template files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(documents.Types()); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			if templatesDir != "" {
				if err := checkTemplateFiles(reg, templatesDir); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d templates.\n", len(reg.Templates))
			return nil
		},
	}
	cmd.Flags().StringVar(&templatesDir, "templates-dir", "", "Also open every non-retired template under this directory")
	return cmd
}

// checkTemplateFiles opens each non-retired template and reports those that
// are missing or not readable DOCX packages.
func checkTemplateFiles(reg *registry.TemplateRegistry, dir string) error {
	var problems []string
	for _, t := range reg.Templates {
		if t.Status == registry.StatusRetired {
			continue
		}
		path := filepath.Join(dir, t.File)
		data, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", t.ID, err))
			continue
		}
		if _, err := docx.OpenBytes(data); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", t.ID, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("template files failed validation:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
