package javabind

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeExpr is a parsed type expression: a name with optional type
// arguments, e.g. Pair<array<String>, Boolean>.
type TypeExpr struct {
	Name string
	Args []*TypeExpr
}

func (te *TypeExpr) String() string {
	if len(te.Args) == 0 {
		return te.Name
	}

	args := make([]string, len(te.Args))
	for i := range te.Args {
		args[i] = te.Args[i].String()
	}
	return te.Name + "<" + strings.Join(args, ", ") + ">"
}

type typeExprParser struct {
	input string
	pos   int
}

func (p *typeExprParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func isNameByte(b byte) bool {
	return b == '_' || b == '/' || b == '$' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *typeExprParser) parse() (*TypeExpr, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && isNameByte(p.input[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unexpected end of type expression %q", p.input)
		}
		return nil, fmt.Errorf("unexpected %q at offset %d in type expression %q", p.input[p.pos], p.pos, p.input)
	}

	expr := &TypeExpr{Name: strings.ReplaceAll(p.input[start:p.pos], ".", "/")}

	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '<' {
		return expr, nil
	}
	p.pos++

	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, arg)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated type arguments in type expression %q", p.input)
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return expr, nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d in type expression %q", p.input[p.pos], p.pos, p.input)
		}
	}
}

// ParseTypeExpr parses a type expression like "array<Pair<array<String>,
// Boolean>>". Dots in class names are read as slashes.
func ParseTypeExpr(s string) (*TypeExpr, error) {
	p := &typeExprParser{input: s}
	expr, err := p.parse()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type expression %q", p.input[p.pos], p.pos, p.input)
	}

	return expr, nil
}

var namedTypes = map[string]Type{
	"boolean": Boolean,
	"byte":    Byte,
	"char":    Char,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"void":    Void,

	"String":  String,
	"Boolean": BoxedBoolean,
	"Integer": BoxedInteger,
	"Long":    BoxedLong,
	"Double":  BoxedDouble,
	"Object":  Object,

	stringClassName:     String,
	"java/lang/Boolean": BoxedBoolean,
	"java/lang/Integer": BoxedInteger,
	"java/lang/Long":    BoxedLong,
	"java/lang/Double":  BoxedDouble,
	objectClassName:     Object,
}

// Resolve builds and validates the type the expression names.
func (te *TypeExpr) Resolve() (Type, error) {
	args := make([]Type, len(te.Args))
	for i := range te.Args {
		arg, err := te.Args[i].Resolve()
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	arity := func(n int) error {
		if len(args) != n {
			return newError(KindConfiguration, nil, "type %s expects %d type argument(s), got %d", te.Name, n, len(args))
		}
		return nil
	}

	var t Type
	switch {
	case te.Name == "array":
		if err := arity(1); err != nil {
			return nil, err
		}
		t = Array(args[0])
	case te.Name == "Pair" || te.Name == PairClassName:
		if err := arity(2); err != nil {
			return nil, err
		}
		t = Pair(args[0], args[1])
	case namedTypes[te.Name] != nil:
		if err := arity(0); err != nil {
			return nil, err
		}
		t = namedTypes[te.Name]
	case strings.Contains(te.Name, "/"):
		if len(args) == 2 {
			t = PairOf(te.Name, args[0], args[1])
		} else {
			if err := arity(0); err != nil {
				return nil, err
			}
			t = Class(te.Name)
		}
	default:
		return nil, newError(KindConfiguration, nil, "unknown type %s", te.Name)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ResolveType parses and resolves a type expression.
func ResolveType(s string) (Type, error) {
	expr, err := ParseTypeExpr(s)
	if err != nil {
		return nil, newError(KindConfiguration, err, "invalid type expression")
	}
	return expr.Resolve()
}
