package javabind

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeclarationFile is the YAML form of a set of call declarations.
type DeclarationFile struct {
	// Package is the Go package generated bindings are written to.
	Package string            `yaml:"package"`
	Calls   []CallDeclaration `yaml:"calls"`
}

// CallDeclaration is a Declaration with its types written as type
// expressions.
type CallDeclaration struct {
	Name      string   `yaml:"name"`
	Class     string   `yaml:"class"`
	Method    string   `yaml:"method"`
	Returns   string   `yaml:"returns"`
	Arguments TypeList `yaml:"arguments"`
}

// TypeList is a sequence of type expressions. In a flow sequence YAML
// splits an expression like Pair<String, Object> on its comma, the parts
// are joined again until the angle brackets balance.
type TypeList []string

func (tl *TypeList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a sequence of type expressions", value.Line)
	}

	list := TypeList{}
	var parts []string
	for _, item := range value.Content {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: expected a type expression", item.Line)
		}

		parts = append(parts, item.Value)
		expr := strings.Join(parts, ", ")
		if strings.Count(expr, "<") > strings.Count(expr, ">") {
			continue
		}

		list = append(list, expr)
		parts = nil
	}

	if len(parts) > 0 {
		return fmt.Errorf("line %d: unterminated type expression %q", value.Line, strings.Join(parts, ", "))
	}

	*tl = list
	return nil
}

// LoadDeclarations decodes a declaration file. Unknown fields are rejected.
func LoadDeclarations(r io.Reader) (*DeclarationFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	file := &DeclarationFile{}
	if err := decoder.Decode(file); err != nil {
		if err == io.EOF {
			return file, nil
		}
		return nil, newError(KindConfiguration, err, "could not decode declarations")
	}

	seen := map[string]bool{}
	for i := range file.Calls {
		if seen[file.Calls[i].Name] {
			return nil, newError(KindConfiguration, nil, "call %s is declared twice", file.Calls[i].Name)
		}
		seen[file.Calls[i].Name] = true
	}

	return file, nil
}

// Resolve resolves the type expressions of the declaration.
func (cd CallDeclaration) Resolve() (Declaration, error) {
	returns := cd.Returns
	if returns == "" {
		returns = "void"
	}

	returnType, err := ResolveType(returns)
	if err != nil {
		return Declaration{}, fmt.Errorf("could not resolve return type of call %s: %w", cd.Name, err)
	}

	argumentTypes := make([]Type, len(cd.Arguments))
	for i := range cd.Arguments {
		argumentTypes[i], err = ResolveType(cd.Arguments[i])
		if err != nil {
			return Declaration{}, fmt.Errorf("could not resolve argument %d of call %s: %w", i, cd.Name, err)
		}
	}

	return Declaration{
		Name:      cd.Name,
		Class:     cd.Class,
		Method:    cd.Method,
		Returns:   returnType,
		Arguments: argumentTypes,
	}, nil
}

// Declarations resolves every call of the file.
func (f *DeclarationFile) Declarations() ([]Declaration, error) {
	declarations := make([]Declaration, len(f.Calls))
	for i := range f.Calls {
		declaration, err := f.Calls[i].Resolve()
		if err != nil {
			return nil, err
		}
		declarations[i] = declaration
	}
	return declarations, nil
}

// DeclareAll declares every call of the file on the bridge.
func DeclareAll(b IBridge, f *DeclarationFile) error {
	declarations, err := f.Declarations()
	if err != nil {
		return err
	}

	for i := range declarations {
		if _, err := b.Declare(declarations[i]); err != nil {
			return err
		}
	}

	return nil
}
