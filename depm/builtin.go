package depm

import (
	_ "embed"

	"pplc/report"
	"pplc/sema"
	"pplc/syntax"
)

//go:embed builtin.ppl
var builtinSource string

// BuiltinModuleName is the name of the implicit builtin module.
const BuiltinModuleName = "ppl"

// NewCompiler creates a semantic compiler with the builtin `ppl` module
// already lowered.  The builtin source ships with the compiler, so any
// diagnostic it produces is fatal.
func NewCompiler() *sema.Compiler {
	c := sema.NewCompiler(nil)

	mod, err := syntax.Parse(BuiltinModuleName, builtinSource)
	if err != nil {
		report.ReportFatal("failed to parse builtin module: %s", err)
		return nil
	}

	lowered, errs := c.LowerModule(mod)
	if len(errs) > 0 {
		report.ReportFatal("failed to lower builtin module: %s", errs[0])
		return nil
	}

	lowered.IsBuiltin = true
	c.Builtin = lowered

	return c
}
