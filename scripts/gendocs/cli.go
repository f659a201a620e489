package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/reposql/internal/cli"
	"github.com/leapstack-labs/reposql/internal/cli/config"
	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

// commandSection is extra reference material for one command page.
type commandSection struct {
	title   string
	text    string
	headers []string
	rows    [][]string
}

// commandSections holds behaviour that the cobra help text does not spell out.
var commandSections = map[string][]commandSection{
	"parse": {
		{
			title: "Exit Status",
			text: "`parse` exits 1 when any document fails to parse. Statements that are not recognised " +
				"only add a warning and do not fail the parse. With several files every file is parsed before the command fails.",
		},
	},
	"score": {
		{
			title: "Scoring",
			text: "Each candidate dialect tokenizes the document on its own and counts the words it registers as keywords. " +
				"The highest count wins and ties go to the earlier dialect in `dialects`. Pragmas are ignored here.",
		},
	},
	"watch": {
		{
			title: "Behaviour",
			text: "Every matching file is parsed once at start. After that a file is parsed again after a write, once " +
				"the debounce delay passes. Files whose content has not changed are skipped, and new subdirectories are watched as they appear. " +
				"Parse failures are reported and do not stop the watcher.",
		},
	},
	"serve": {
		{
			title:   "Endpoints",
			headers: []string{"Method", "Path", "Description"},
			rows: [][]string{
				{"GET", InlineCode("/healthz"), "Liveness check"},
				{"GET", InlineCode("/api/v1/dialects"), "Configured dialects in priority order"},
				{"POST", InlineCode("/api/v1/parse"), "Parse a document (raw body or JSON `{sql, dialect, source}`)"},
				{"POST", InlineCode("/api/v1/score"), "Keyword score per dialect"},
				{"GET", InlineCode("/api/v1/runs"), "Recent parse runs (`?limit=`)"},
				{"GET", InlineCode("/api/v1/runs/{id}"), "One parse run"},
			},
		},
		{
			title:   "Status Codes",
			headers: []string{"Status", "When"},
			rows: [][]string{
				{"200", "Parsed, including documents with recorded problems"},
				{"400", "Empty document, invalid JSON or unknown `?dialect=`"},
				{"404", "Unknown run, or history disabled"},
				{"413", "Body larger than `server.max_body_bytes`"},
				{"422", "No dialect applies to the document"},
			},
		},
	},
	"repl": {
		{
			title:   "REPL Commands",
			headers: []string{"Command", "Description"},
			rows: [][]string{
				{InlineCode(".dialect [name|auto]"), "Show or force the dialect"},
				{InlineCode(".dialects"), "List configured dialects"},
				{InlineCode(".scores"), "Keyword scores of the last document"},
				{InlineCode(".props"), "Toggle node properties in the tree"},
				{InlineCode(".history [n]"), "Recent parse runs"},
				{InlineCode(".quit"), "Leave the REPL (also `.exit`)"},
			},
		},
		{
			title: "Input",
			text:  "Lines are buffered until one ends with `;` or a line holds a single `/`, which ends a PL/SQL block.",
		},
	},
	"history": {
		{
			title: "Requirements",
			text: "History is recorded in the SQLite database at `state_path` while `history` is enabled. " +
				"To show one run pass its full id, as printed with `-o json`.",
		},
	},
}

// visibleCommands returns the documented subcommands of root.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// generateCLIDocs writes an index page plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range visibleCommands(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for reposql")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("reposql parses DDL documents into a generic parse tree. Each document is handed to one dialect grammar, " +
		"chosen as described below.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/reposql/cmd/reposql@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Dialect Selection")
	w.BulletList([]string{
		"A dialect forced with `--dialect` is used as is.",
		"Otherwise a leading comment such as `-- dialect: oracle` selects the first dialect that claims it.",
		"Otherwise every dialect in `--dialects` order scores the document. The highest keyword count wins and ties go to the earlier dialect.",
		"A document in which no dialect finds a keyword fails with \"no applicable dialect\".",
	})
	var dialectRows [][]string
	for _, id := range builtin.IDs() {
		g, _ := builtin.Lookup(id)
		dialectRows = append(dialectRows, []string{InlineCode(id), strings.Join(quoteAll(g.Pragmas()), ", ")})
	}
	w.Table([]string{"Dialect", "Pragma names"}, dialectRows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Output")
	w.Paragraph(fmt.Sprintf("%s accepts %s. %s renders styled text on a terminal and markdown otherwise.",
		InlineCode("--output"), strings.Join(quoteAll(output.Modes), ", "), InlineCode("auto")))

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Settings resolve in this order: flags first, then %s variables, then %s, then the built-in defaults. "+
		"List values are comma-separated.", InlineCode(config.EnvPrefix+"*"), InlineCode("reposql.yaml")))
	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(f.EnvVar), InlineCode(f.Key), f.Default})
	}
	w.Table([]string{"Variable", "Key", "Default"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success. Parse warnings and unknown statements do not change it."},
		{InlineCode("1"), "Invalid configuration, unreadable input, unknown dialect, or a document that failed to parse"},
	})

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", "reposql "+strings.TrimPrefix(cmd.UseLine(), "reposql "))

	if len(cmd.Aliases) > 0 {
		w.Paragraph("Aliases: " + strings.Join(quoteAll(cmd.Aliases), ", "))
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	for _, s := range commandSections[cmd.Name()] {
		w.Header(2, s.title)
		if s.text != "" {
			w.Paragraph(s.text)
		}
		if len(s.rows) > 0 {
			w.Table(s.headers, s.rows)
		}
	}

	if cmd.HasInheritedFlags() {
		w.Paragraph("Global options such as `--dialects`, `--state` and `--output` apply as well; see [the CLI reference](/cli/).")
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w.Bytes()
}

// writeFlagsTable lists flags with the config key each one overrides.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	keys := map[string]bool{}
	for _, f := range configFields() {
		keys[f.Key] = true
	}

	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}
		key := ""
		if k := config.FlagKey(f.Name); keys[k] {
			key = InlineCode(k)
		}
		rows = append(rows, []string{name, f.Value.Type(), key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Type", "Config key", "Description"}, rows)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	indents := make([]int, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimLeft(line, " \t"); trimmed != "" {
			indents = append(indents, len(line)-len(trimmed))
		}
	}
	if len(indents) == 0 {
		return ""
	}
	cut := slices.Min(indents)
	for i, line := range lines {
		if len(line) >= cut {
			lines[i] = line[cut:]
		}
	}
	return strings.Join(lines, "\n")
}
