package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/templates"
)

type renderOptions struct {
	docType      string
	recordPath   string
	templatePath string
	templatesDir string
	registryPath string
	outDir       string
	maxAgenda    int
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a record fixture into a DOCX file",
		Long: `Render a record fixture into a DOCX file.

The template is either given directly with --template or resolved through the
template registry with --templates-dir and --registry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.docType, "type", "", "document type (defaults to the record's type)")
	cmd.Flags().StringVar(&opts.recordPath, "record", "", "record fixture (.yaml or .json)")
	cmd.Flags().StringVar(&opts.templatePath, "template", "", "DOCX template")
	cmd.Flags().StringVar(&opts.templatesDir, "templates-dir", "./plantillas", "template directory used with --registry")
	cmd.Flags().StringVar(&opts.registryPath, "registry", "", "template registry used when --template is not set")
	cmd.Flags().StringVar(&opts.outDir, "out", ".", "output directory")
	cmd.Flags().IntVar(&opts.maxAgenda, "max-agenda-items", 0, "agenda items injected at most (0 uses the default)")
	_ = cmd.MarkFlagRequired("record")

	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	record, err := loadRecord(opts.recordPath)
	if err != nil {
		return err
	}
	if opts.docType != "" {
		if record.Type != "" && record.Type != opts.docType {
			return fmt.Errorf("record is a %s, not a %s", record.Type, opts.docType)
		}
		record.Type = opts.docType
	}
	if record.Type == "" {
		return fmt.Errorf("document type missing: set --type or the record's type")
	}

	template, err := loadTemplate(ctx, opts, record.Type)
	if err != nil {
		return err
	}

	result, err := documents.NewGenerator(log, nil, opts.maxAgenda).Generate(ctx, *record, template)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	outPath := filepath.Join(opts.outDir, result.Output.Filename)
	if err := os.WriteFile(outPath, result.Output.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %s (%d bytes)\n", outPath, len(result.Output.Content))
	fmt.Fprintf(out, "  paragraphs replaced: %d, inserted: %d, agenda items: %d\n",
		result.ReplacedParagraphs, result.InsertedParagraphs, result.AgendaItems)
	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "  [%s] %s: %s\n", d.Code, d.Message, d.Details)
	}
	return nil
}

func loadTemplate(ctx context.Context, opts renderOptions, docType string) ([]byte, error) {
	if opts.templatePath != "" {
		data, err := os.ReadFile(opts.templatePath)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		return data, nil
	}
	if opts.registryPath == "" {
		return nil, fmt.Errorf("either --template or --registry is required")
	}
	return templates.NewStore(opts.templatesDir, opts.registryPath, 0, log).Load(ctx, docType)
}
