// Package cmd is the top-level driver package for the PPL compiler: it
// parses command-line arguments, manages compiler state, and runs the
// compilation phases in order.
package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"pplc/codegen"
	"pplc/depm"
	"pplc/report"
	"pplc/syntax"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The path to the root directory of the module being compiled.
	rootPath string

	// The path to write output to.
	outputPath string

	// Whether to stop after writing textual LLVM IR.
	emitIR bool

	// Whether to keep running, rebuilding whenever a source file changes.
	watch bool
}

// RunCompiler is the main entry point for the PPL compiler.  This should be
// called directly from main.
func RunCompiler() int {
	c := NewCompilerFromArgs()

	if c.watch {
		return c.watchLoop()
	}

	if !c.Compile() {
		return 1
	}

	return 0
}

// Compile runs all compilation phases for the root module.  It reports its
// own diagnostics and returns whether compilation succeeded.
func (c *Compiler) Compile() bool {
	mod, err := depm.LoadModule(c.rootPath)
	if err != nil {
		report.ReportFatal("%s", err)
		return false
	}

	files, err := mod.SourceFiles()
	if err != nil || len(files) == 0 {
		report.ReportFatal("module `%s` has no source files", mod.Name)
		return false
	}

	// files are joined into one source text so every span resolves through
	// a single context
	var sb strings.Builder
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			report.ReportFatal("unable to read `%s`: %s", file, err)
			return false
		}

		sb.Write(src)
		sb.WriteByte('\n')
	}

	source := sb.String()

	cctx := &report.CompileContext{
		ModName:     mod.Name,
		FileAbsPath: c.rootPath,
		Source:      source,
	}

	astMod, err := syntax.Parse(mod.Name, source)
	if err != nil {
		report.ReportCompileError(cctx, err)
		return false
	}

	report.ReportVerbose("parsed module `%s` (%d files)", mod.Name, len(files))

	compiler := depm.NewCompiler()

	hirMod, errs := compiler.LowerModule(astMod)
	if len(errs) > 0 {
		report.ReportCompileErrors(cctx, errs)
		return false
	}

	hirMod.SourceFile = c.rootPath

	if !report.ShouldProceed() {
		return false
	}

	llMod := codegen.Generate(hirMod)

	irPath := c.irPath(mod)
	if err := os.WriteFile(irPath, []byte(llMod.String()), 0o644); err != nil {
		report.ReportFatal("unable to write `%s`: %s", irPath, err)
		return false
	}

	report.ReportVerbose("wrote LLVM IR to `%s`", irPath)

	if c.emitIR {
		return true
	}

	return c.link(mod, irPath)
}

func (c *Compiler) irPath(mod *depm.Module) string {
	if c.emitIR && c.outputPath != "" {
		return c.outputPath
	}

	return filepath.Join(c.rootPath, mod.Output+".ll")
}

// link hands the emitted IR to the system C compiler together with the
// module's runtime link objects.
func (c *Compiler) link(mod *depm.Module, irPath string) bool {
	output := c.outputPath
	if output == "" {
		output = filepath.Join(c.rootPath, mod.Output)
	}

	args := []string{irPath}
	args = append(args, mod.LinkObjects...)
	args = append(args, "-o", output)

	link := exec.Command("cc", args...)
	link.Stderr = os.Stderr

	if err := link.Run(); err != nil {
		report.ReportFatal("linking failed: %s", err)
		return false
	}

	report.ReportVerbose("linked `%s`", output)
	return true
}
