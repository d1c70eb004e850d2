package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/jannah-ayman/arcanequest-lang/lib/lexer"
	"github.com/jannah-ayman/arcanequest-lang/lib/parser"
	"github.com/jannah-ayman/arcanequest-lang/lib/project"
)

func init() {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "input-str",
			Aliases: []string{"s"},
			Usage:   "Scan a string instead of a file",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "The path to the project config file",
		},
	}

	commands = append(commands, &cli.Command{
		Name:      "scan",
		Usage:     "Print the token stream of an ArcaneQuest file",
		Category:  "inspect",
		ArgsUsage: "<file.aq>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the tokens as JSON",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include NEWLINE and EOF tokens in the listing",
			},
		}, sourceFlags...),
		Action: scanAction,
	}, &cli.Command{
		Name:      "parse",
		Usage:     "Print the syntax tree of an ArcaneQuest file",
		Category:  "inspect",
		ArgsUsage: "<file.aq>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the tree as JSON",
			},
		}, sourceFlags...),
		Action: parseAction,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Report diagnostics for an ArcaneQuest file",
		Category:  "inspect",
		ArgsUsage: "<file.aq>",
		Flags:     sourceFlags,
		Action:    checkAction,
	})
}

// loadSource resolves the text to analyze: an --input-str literal, a
// file argument, or the project entry point from aqconf.yaml.
func loadSource(c *cli.Context) (string, error) {
	if s := c.String("input-str"); s != "" {
		return s, nil
	}

	f := c.Args().First()
	if f == "" {
		dir := c.String("config")
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return "", err
			}
		}
		conf, err := project.GetAqConf(dir)
		if err != nil {
			return "", cli.Exit(color.RedString("No input file and no %s found: %s", project.ConfFile, err), 1)
		}
		f = filepath.Join(dir, conf.Main)
	}

	if filepath.Ext(f) != ".aq" {
		color.Yellow("Warning: %s does not have the .aq extension", f)
	}

	src, err := os.ReadFile(f)
	if err != nil {
		return "", cli.Exit(color.RedString("Error reading %s: %s", f, err), 1)
	}
	return string(src), nil
}

func scanAction(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	tokens := lexer.Scan(src)

	if c.Bool("json") {
		type tokenJSON struct {
			Kind   string `json:"kind"`
			Lexeme string `json:"lexeme"`
			Line   int    `json:"line"`
		}
		out := make([]tokenJSON, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, tokenJSON{Kind: t.Kind.String(), Lexeme: t.Lexeme, Line: t.Line})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printTokens(tokens, c.Bool("all"))
	return nil
}

func parseAction(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	result := parser.Parse(lexer.Scan(src))

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Program); err != nil {
			return err
		}
	} else {
		fmt.Print(parser.Dump(result.Program))
	}

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, color.RedString(e.Error()))
	}
	if len(result.Errors) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func checkAction(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	result := parser.Parse(lexer.Scan(src))

	if len(result.Errors) == 0 {
		color.Green("No problems found")
		return nil
	}
	for _, e := range result.Errors {
		fmt.Println(color.RedString(e.Error()))
	}
	return cli.Exit(color.RedString("%d problem(s) found", len(result.Errors)), 1)
}

// printTokens writes the aligned human-readable listing: lexeme,
// description, source line.
func printTokens(tokens []lexer.Token, all bool) {
	type row struct {
		value, desc string
		line        int
	}

	var rows []row
	width := 0
	for _, t := range tokens {
		if !all && (t.Kind == lexer.KindNewline || t.Kind == lexer.KindEOF) {
			continue
		}
		value := t.Lexeme
		if value == "" {
			value = t.Kind.String()
		}
		if len(value) > width {
			width = len(value)
		}
		rows = append(rows, row{value: value, desc: describeToken(t), line: t.Line})
	}

	for _, r := range rows {
		fmt.Printf("%-*s  -> %s  (line %d)\n", width, r.value, colorize(r.desc), r.line)
	}
}

var operatorNames = map[string]string{
	",": "comma", ":": "colon", "=": "assign", ".": "dot",
	"(": "lparen", ")": "rparen", "{": "lbrace", "}": "rbrace",
	"[": "lbracket", "]": "rbracket",
	"+": "plus", "-": "minus", "*": "star", "/": "slash", "%": "mod",
	"<": "lt", ">": "gt", "<=": "lte", ">=": "gte",
	"==": "eq", "!=": "neq", "!": "bang", "~": "tilde",
	"+=": "plus_assign", "-=": "minus_assign",
	"*=": "mult_assign", "/=": "div_assign", "%=": "mod_assign",
	"**": "power", "//": "floor_div",
}

func describeToken(t lexer.Token) string {
	switch t.Kind {
	case lexer.KindIdentifier:
		return "identifier"
	case lexer.KindNumber:
		return "number"
	case lexer.KindString:
		return "string"
	case lexer.KindOperator:
		if name, ok := operatorNames[t.Lexeme]; ok {
			return name
		}
		return "operator"
	case lexer.KindError:
		return "error"
	default:
		if t.Kind.IsKeyword() {
			return "keyword"
		}
		return strings.ToLower(t.Kind.String())
	}
}

func colorize(desc string) string {
	switch desc {
	case "keyword":
		return color.CyanString(desc)
	case "string":
		return color.GreenString(desc)
	case "number":
		return color.MagentaString(desc)
	case "error":
		return color.RedString(desc)
	default:
		return desc
	}
}
