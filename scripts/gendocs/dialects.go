package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

// generateDialectDocs writes an index of the built-in dialects and one page
// per dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "Built-in DDL dialects")
	w.GeneratedMarker()
	w.Header(1, "Dialects")
	w.Paragraph("A document naming a dialect in a `-- dialect: <name>` comment is parsed by that dialect. " +
		"Otherwise every candidate counts the keywords it recognises and the highest count wins; " +
		"ties go to the dialect listed first.")

	var rows [][]string
	for _, id := range builtin.IDs() {
		g, _ := builtin.Lookup(id)
		link := fmt.Sprintf("[%s](/dialects/%s)", id, strings.ToLower(id))
		rows = append(rows, []string{link, strings.Join(g.Pragmas(), ", "), fmt.Sprint(len(g.Keywords())), fmt.Sprint(len(g.StatementPhrases()))})

		if err := generateDialectPage(id, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", id, err)
		}
	}
	w.Table([]string{"Dialect", "Pragmas", "Keywords", "Statements"}, rows)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

func generateDialectPage(id, outDir string) error {
	g, ok := builtin.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown dialect %q", id)
	}

	w := NewMarkdownWriter()
	w.Frontmatter(id, id+" DDL dialect")
	w.GeneratedMarker()
	w.Header(1, id)

	w.Header(2, "Pragmas")
	var pragmas []string
	for _, p := range g.Pragmas() {
		pragmas = append(pragmas, InlineCode("-- dialect: "+strings.ToLower(p)))
	}
	w.BulletList(pragmas)

	w.Header(2, "Statements")
	var statements []string
	for _, s := range g.StatementPhrases() {
		statements = append(statements, InlineCode(s))
	}
	w.BulletList(statements)

	w.Header(2, "Keywords")
	w.Paragraph(strings.Join(g.Keywords(), " "))

	name := strings.ToLower(id) + ".md"
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated %s", name)
	return nil
}
