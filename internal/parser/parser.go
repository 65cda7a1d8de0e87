// Package parser turns Structured Text tokens into an ast.CompilationUnit.
package parser

import (
	"slices"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/lexer"
	"plcc/internal/source"
	"plcc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit   *ast.CompilationUnit
	Errors uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	unit     *ast.CompilationUnit
	opts     Options
	lastSpan source.Span
}

// ParseFile parses every declaration lx yields.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		unit:     &ast.CompilationUnit{File: lx.File().ID},
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseItems()
	return Result{Unit: p.unit, Errors: p.opts.CurrentErrors}
}

// ParseSource lexes and parses one file of fs.
func ParseSource(fs *source.FileSet, id source.FileID, opts Options) Result {
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: opts.Reporter})
	return ParseFile(lx, opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		if !p.parseItem() {
			p.resyncTop()
		}
	}
}

func (p *Parser) parseItem() bool {
	switch p.lx.Peek().Kind {
	case token.PropertyExternal:
		p.advance()
		if !p.atOr(token.KwProgram, token.KwFunction, token.KwFunctionBlock) {
			p.err(diag.SynUnexpectedToken, "expected POU after @EXTERNAL")
			return false
		}
		return p.parsePOU(true)
	case token.KwProgram, token.KwFunction, token.KwFunctionBlock:
		return p.parsePOU(false)
	case token.KwType:
		return p.parseTypeBlock()
	case token.KwVarGlobal:
		blk, ok := p.parseVarBlock()
		if blk != nil {
			p.unit.GlobalVars = append(p.unit.GlobalVars, blk)
		}
		return ok
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
			"unexpected top-level token "+describe(p.lx.Peek()))
		p.advance()
		return false
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwProgram, token.KwFunction, token.KwFunctionBlock,
		token.KwType, token.KwVarGlobal, token.PropertyExternal:
		return true
	default:
		return false
	}
}

// resyncTop skips to the next top-level declaration.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) && !isTopLevelStarter(p.lx.Peek().Kind) {
		p.advance()
	}
}

func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.lx.Peek()))
	return token.Token{}, false
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return "\"" + t.Text + "\""
}
