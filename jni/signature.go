package jni

import (
	"fmt"
	"strings"
)

// Field descriptor codes of the primitive types.
const (
	SigBoolean = "Z"
	SigByte    = "B"
	SigChar    = "C"
	SigShort   = "S"
	SigInt     = "I"
	SigLong    = "J"
	SigFloat   = "F"
	SigDouble  = "D"
	SigVoid    = "V"
)

// ClassSignature returns the field descriptor of a reference type, e.g.
// "Ljava/lang/String;" for "java/lang/String".
func ClassSignature(name string) string {
	return "L" + name + ";"
}

// ArraySignature returns the field descriptor of an array of elem.
func ArraySignature(elem string) string {
	return "[" + elem
}

// MethodSignature composes a method descriptor from field descriptors.
func MethodSignature(ret string, args ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range args {
		sb.WriteString(args[i])
	}
	sb.WriteByte(')')
	sb.WriteString(ret)
	return sb.String()
}

// IsReferenceSignature reports whether the field descriptor names a class or
// array type.
func IsReferenceSignature(sig string) bool {
	return strings.HasPrefix(sig, "L") || strings.HasPrefix(sig, "[")
}

// ParseMethodSignature splits a method descriptor into its parameter and
// return field descriptors.
func ParseMethodSignature(sig string) ([]string, string, error) {
	if !strings.HasPrefix(sig, "(") {
		return nil, "", fmt.Errorf("method signature %q does not start with '('", sig)
	}

	params := []string{}
	rest := sig[1:]
	for {
		if rest == "" {
			return nil, "", fmt.Errorf("method signature %q is missing ')'", sig)
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}

		field, tail, err := nextField(rest)
		if err != nil {
			return nil, "", fmt.Errorf("invalid method signature %q: %w", sig, err)
		}
		if field == SigVoid {
			return nil, "", fmt.Errorf("invalid method signature %q: void parameter", sig)
		}
		params = append(params, field)
		rest = tail
	}

	ret, tail, err := nextField(rest)
	if err != nil {
		return nil, "", fmt.Errorf("invalid method signature %q: %w", sig, err)
	}
	if tail != "" {
		return nil, "", fmt.Errorf("invalid method signature %q: trailing %q", sig, tail)
	}

	return params, ret, nil
}

// ParseFieldSignature validates a single field descriptor.
func ParseFieldSignature(sig string) error {
	field, tail, err := nextField(sig)
	if err != nil {
		return err
	}
	if tail != "" || field == SigVoid {
		return fmt.Errorf("invalid field signature %q", sig)
	}
	return nil
}

func nextField(s string) (string, string, error) {
	if s == "" {
		return "", "", fmt.Errorf("unexpected end of signature")
	}

	switch s[0] {
	case 'Z', 'B', 'C', 'S', 'I', 'J', 'F', 'D', 'V':
		return s[:1], s[1:], nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 2 {
			return "", "", fmt.Errorf("unterminated class name in %q", s)
		}
		return s[:end+1], s[end+1:], nil
	case '[':
		elem, tail, err := nextField(s[1:])
		if err != nil {
			return "", "", err
		}
		if elem == SigVoid {
			return "", "", fmt.Errorf("array of void in %q", s)
		}
		return "[" + elem, tail, nil
	}

	return "", "", fmt.Errorf("unknown type code %q", s[0])
}
