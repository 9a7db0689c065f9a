// Command schema writes the JSON schema for the bot tuning file, or checks a
// tuning file against the server's own validation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/lab1702/ofbot/config"
)

const configPkg = "github.com/lab1702/ofbot/config"

// docs describes the tuning types and the keys whose tags carry no description
var docs = map[string]string{
	configPkg + ".Tuning":                     "Bot convars. Distances are in world units and times in seconds.",
	configPkg + ".Tuning.KeepClassAfterDeath": "Respawn as the same class instead of picking a new one",
	configPkg + ".Tuning.SpyAlertRadius":      "Teammates within this radius are told when a suspected spy is realized",
	configPkg + ".Match":                      "The demo match the arena server hosts: game mode, mutators, bots per team and seed",
	configPkg + ".Debug":                      "Switches for the bracketed debug log streams",
}

func main() {
	var outPath, checkPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&checkPath, "check", "", "tuning file to validate instead of writing the schema")
	flag.Parse()

	if checkPath != "" {
		summary, err := check(checkPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s: ok (%s)\n", checkPath, summary)
		return
	}

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out or --check is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

// check loads path the way the server does, defaults first, and summarizes
// the match it describes
func check(path string) (string, error) {
	t, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %d bots per team, %s", t.Match.GameType, t.Match.BotsPerTeam, t.Skill()), nil
}

// buildSchema reflects config.Tuning with the root expanded. No key is
// required because the loader starts from the stock defaults.
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		CommentMap:                 docs,
	}
	schema := reflector.Reflect(new(config.Tuning))
	schema.Title = "Bot Tuning"
	schema.Examples = []any{config.Default()}
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
