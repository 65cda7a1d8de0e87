// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"plcc/internal/ast"
	"plcc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed unit:
//  1. every span points into sf and is non-empty
//  2. variable blocks lie inside their POU, variables inside their block,
//     struct members inside their type
//  3. POUs appear in source order without overlapping
func CheckSpanInvariants(u *ast.CompilationUnit, sf *source.File) error {
	if u == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	valid := func(what string, sp source.Span) error {
		switch {
		case sp.File != sf.ID:
			return fmt.Errorf("%s span points to file %d, want %d", what, sp.File, sf.ID)
		case sp.End <= sp.Start:
			return fmt.Errorf("%s span is empty: %v", what, sp)
		case sp.End > size:
			return fmt.Errorf("%s span ends beyond content: %d > %d", what, sp.End, size)
		}
		return nil
	}
	inside := func(what string, inner, outer source.Span) error {
		if err := valid(what, inner); err != nil {
			return err
		}
		if inner.Start < outer.Start || inner.End > outer.End {
			return fmt.Errorf("%s span %v escapes %v", what, inner, outer)
		}
		return nil
	}
	checkBlock := func(owner string, blk *ast.VariableBlock, outer source.Span) error {
		if err := inside(owner+" block", blk.Span, outer); err != nil {
			return err
		}
		for _, v := range blk.Variables {
			if err := inside(owner+"."+v.Name, v.Span, blk.Span); err != nil {
				return err
			}
		}
		return nil
	}

	var prevEnd uint32
	for _, p := range u.POUs {
		if err := valid(p.Name, p.Span); err != nil {
			return err
		}
		if p.Span.Start < prevEnd {
			return fmt.Errorf("%s overlaps the previous POU", p.Name)
		}
		prevEnd = p.Span.End
		if err := inside(p.Name+" name", p.NameSpan, p.Span); err != nil {
			return err
		}
		for _, blk := range p.VariableBlocks {
			if err := checkBlock(p.Name, blk, p.Span); err != nil {
				return err
			}
		}
	}

	file := source.Span{File: sf.ID, Start: 0, End: size}
	for _, blk := range u.GlobalVars {
		if err := checkBlock("global", blk, file); err != nil {
			return err
		}
	}
	for _, t := range u.Types {
		if err := valid(t.Name, t.Span); err != nil {
			return err
		}
		for _, m := range t.Members {
			if err := inside(t.Name+"."+m.Name, m.Span, t.Span); err != nil {
				return err
			}
		}
	}
	return nil
}
