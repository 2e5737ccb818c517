package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"legal-docs-workers/internal/docx"
	"legal-docs-workers/internal/documents"
)

var tokenPattern = regexp.MustCompile(`\{\{[^{}]+\}\}`)

type tokenHit struct {
	Token   string
	Regions []docx.Region
	Count   int
}

// scanTokens lists every {{...}} token of a template in first-seen order.
// Tokens only present in text boxes, content controls or nested tables come
// last, with no region and no count.
func scanTokens(content []byte) ([]tokenHit, error) {
	doc, err := docx.OpenBytes(content)
	if err != nil {
		return nil, err
	}

	var hits []tokenHit
	index := map[string]int{}
	for p := range doc.Paragraphs() {
		for _, tok := range tokenPattern.FindAllString(p.Text(), -1) {
			i, seen := index[tok]
			if !seen {
				i = len(hits)
				index[tok] = i
				hits = append(hits, tokenHit{Token: tok})
			}
			hits[i].Count++
			if !containsRegion(hits[i].Regions, p.Region()) {
				hits[i].Regions = append(hits[i].Regions, p.Region())
			}
		}
	}
	for _, tok := range doc.Tokens() {
		if _, seen := index[tok]; !seen {
			index[tok] = len(hits)
			hits = append(hits, tokenHit{Token: tok})
		}
	}
	return hits, nil
}

func containsRegion(regions []docx.Region, r docx.Region) bool {
	for _, x := range regions {
		if x == r {
			return true
		}
	}
	return false
}

func tokensCmd() *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the placeholder tokens found in a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			hits, err := scanTokens(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintln(out, "No placeholder tokens found")
				return nil
			}
			for _, h := range hits {
				if len(h.Regions) == 0 {
					fmt.Fprintf(out, "%-40s %3s  %s\n", h.Token, "-", "nested")
					continue
				}
				regions := make([]string, len(h.Regions))
				for i, r := range h.Regions {
					regions[i] = string(r)
				}
				fmt.Fprintf(out, "%-40s %3d  %s\n", h.Token, h.Count, strings.Join(regions, ","))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "DOCX template")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported document types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range documents.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}
