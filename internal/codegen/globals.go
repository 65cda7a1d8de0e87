package codegen

import (
	"context"

	"github.com/llir/llvm/ir/constant"

	"plcc/internal/codegen/cgerr"
)

// generateGlobals emits VAR_GLOBAL variables as module globals, initialized
// with their constant initializer, their type's initial value or zero.
func (g *Generator) generateGlobals(context.Context) error {
	for _, v := range g.idx.GlobalVariables() {
		t, err := g.llvmType(v.TypeName)
		if err != nil {
			return cgerr.NewUnknownType(v.TypeName, v.Span)
		}
		var init constant.Constant
		switch {
		case v.Initializer != nil:
			if init, err = constantOf(v.Initializer, t); err != nil {
				return withMessagePrefix(err, v.Name+": ")
			}
		default:
			if c, ok := g.types.FindInitialValue(v.TypeName); ok {
				init = c
			} else {
				init = zeroOf(t)
			}
		}
		glob := g.mod.NewGlobalDef(v.Name, init)
		if err := g.types.RegisterGlobal(v.Name, glob); err != nil {
			return err
		}
	}
	return nil
}
