package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"pplc/report"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"
)

// Version is the current compiler version, checked against the manifest's
// `ppl-version` constraint.
const Version = "0.1.0"

// ModuleFileName is the name of the module manifest file.
const ModuleFileName = "ppl.toml"

// Module is a source module as described by its manifest.
type Module struct {
	// AbsPath is the absolute path to the module directory.
	AbsPath string

	Name        string
	Output      string
	LinkObjects []string
}

// tomlModule represents a module as it is encoded in TOML.
type tomlModule struct {
	Name        string   `toml:"name"`
	PPLVersion  string   `toml:"ppl-version"`
	Output      string   `toml:"output"`
	LinkObjects []string `toml:"link-objects"`
}

// LoadModule loads and validates the module rooted at abspath.
func LoadModule(abspath string) (*Module, error) {
	buff, err := os.ReadFile(filepath.Join(abspath, ModuleFileName))
	if err != nil {
		return nil, fmt.Errorf("unable to read module file at `%s`: %w", abspath, err)
	}

	tomlMod := &tomlModule{}
	if err := toml.Unmarshal(buff, tomlMod); err != nil {
		return nil, fmt.Errorf("error parsing module file at `%s`: %w", abspath, err)
	}

	mod := &Module{AbsPath: abspath}
	if err := validateModule(mod, tomlMod); err != nil {
		return nil, err
	}

	return mod, nil
}

// validateModule checks the manifest contents and moves them onto the
// module.
func validateModule(mod *Module, tomlMod *tomlModule) error {
	if tomlMod.Name == "" {
		return fmt.Errorf("module at `%s` is missing a name", mod.AbsPath)
	}

	if tomlMod.PPLVersion != "" {
		constraint, err := semver.NewConstraint(tomlMod.PPLVersion)
		if err != nil {
			return fmt.Errorf("module `%s` has an invalid ppl-version constraint: %w", tomlMod.Name, err)
		}

		if !constraint.Check(semver.MustParse(Version)) {
			return fmt.Errorf(
				"module `%s` requires ppl %s, but this is ppl v%s",
				tomlMod.Name, tomlMod.PPLVersion, Version,
			)
		}
	}

	mod.Name = tomlMod.Name
	mod.Output = tomlMod.Output
	mod.LinkObjects = tomlMod.LinkObjects

	if mod.Output == "" {
		mod.Output = mod.Name
	}

	report.ReportVerbose("loaded module `%s` at `%s`", mod.Name, mod.AbsPath)
	return nil
}

// SourceFiles lists the module's source files in lexical order.
func (m *Module) SourceFiles() ([]string, error) {
	entries, err := os.ReadDir(m.AbsPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".ppl" {
			files = append(files, filepath.Join(m.AbsPath, entry.Name()))
		}
	}

	return files, nil
}
