package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plcc/internal/diag"
	"plcc/internal/diagfmt"
	"plcc/internal/lexer"
	"plcc/internal/source"
	"plcc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.st",
	Short: "Tokenize a Structured Text source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	tokens, err := tokenizeFile(fs, args[0], bag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := printDiagnostics(cmd, bag, fs, "pretty", ""); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// tokenizeFile lexes path into a token list ending with EOF. Lexical errors
// go to bag.
func tokenizeFile(fs *source.FileSet, path string, bag *diag.Bag) ([]token.Token, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}
