package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/reposql/internal/cli/config"
)

// ConfigField describes one configuration key.
type ConfigField struct {
	Key         string
	EnvVar      string
	Type        string
	Default     string
	Rules       string
	Description string
}

// configDescriptions documents each configuration key.
var configDescriptions = map[string]string{
	"dialects":              "Candidate dialects in priority order; empty means every built-in dialect",
	"parallel_scoring":      "Score candidate dialects concurrently",
	"state_path":            "Parse history database, relative to the project root",
	"history":               "Record every parse in the history database",
	"output":                "Output format: auto, text, markdown, json or yaml",
	"verbose":               "Debug logging on stderr",
	"server.addr":           "Listen address of `reposql serve`",
	"server.max_body_bytes": "Largest document the HTTP API accepts",
	"watch.debounce":        "Delay before `reposql watch` re-parses a changed file",
	"watch.extensions":      "File extensions `reposql watch` parses",
}

// configFields walks config.Config and returns every koanf key with its
// default value and validation rules.
func configFields() []ConfigField {
	var fields []ConfigField
	collectFields(reflect.ValueOf(config.Default()).Elem(), "", &fields)
	return fields
}

func collectFields(v reflect.Value, prefix string, out *[]ConfigField) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key, _, _ := strings.Cut(sf.Tag.Get("koanf"), ",")
		if key == "" || key == "-" {
			continue
		}
		key = prefix + key
		fv := v.Field(i)

		if fv.Kind() == reflect.Struct {
			collectFields(fv, key+".", out)
			continue
		}

		*out = append(*out, ConfigField{
			Key:         key,
			EnvVar:      config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_")),
			Type:        sf.Type.String(),
			Default:     defaultText(fv),
			Rules:       sf.Tag.Get("validate"),
			Description: configDescriptions[key],
		})
	}
}

func defaultText(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			return "-"
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
	}
	return fmt.Sprint(v.Interface())
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "reposql configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("reposql reads %s from the project root, searching up to ten parent directories. "+
		"Relative paths are resolved against the directory holding the file.",
		strings.Join(quoteAll(config.ConfigFileNames), " or ")))

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Rules", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		rules := "-"
		if f.Rules != "" {
			rules = InlineCode(f.Rules)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, InlineCode(f.Default), rules, f.Description})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `dialects: [postgres, standard]
parallel_scoring: true
state_path: .reposql/history.db
output: markdown
server:
  addr: 127.0.0.1:8080
watch:
  debounce: 250ms
  extensions: [.sql, .ddl]`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = InlineCode(n)
	}
	return out
}
