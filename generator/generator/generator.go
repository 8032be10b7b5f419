package generator

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	internal "github.com/jerbob92/javabind/internal"

	"golang.org/x/tools/go/packages"
)

var (
	//go:embed templates/*
	templates embed.FS
)

// Generate writes typed bindings for the declarations in the YAML document
// to fileName in dir. An empty packageName is taken from the document, or
// from the name of dir when the document has none.
func Generate(dir string, fileName string, declarations []byte, packageName string) error {
	file, err := internal.LoadDeclarations(bytes.NewReader(declarations))
	if err != nil {
		return err
	}

	if packageName == "" {
		packageName = file.Package
	}
	if packageName == "" {
		packageName = sanitizePackageName(filepath.Base(dir))
	}

	data, err := BuildTemplateData(packageName, file)
	if err != nil {
		return err
	}

	source, err := Render(data)
	if err != nil {
		return err
	}

	return os.WriteFile(path.Join(dir, fileName), source, 0o644)
}

// LoadPackageName returns the name of the package the Go file fileName in
// dir belongs to.
func LoadPackageName(dir, fileName string) (string, error) {
	pkgs, err := packages.Load(&packages.Config{
		Dir:  dir,
		Mode: packages.NeedName,
	}, fmt.Sprintf("file=%s", filepath.Join(dir, fileName)))
	if err != nil {
		return "", err
	}

	if len(pkgs) == 0 || pkgs[0].Name == "" {
		return "", fmt.Errorf("could not find the package of %s", fileName)
	}
	return pkgs[0].Name, nil
}

func sanitizePackageName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
	if first, _ := utf8.DecodeRuneInString(name); name == "" || unicode.IsDigit(first) {
		name = "bindings" + name
	}
	return name
}

// BuildTemplateData resolves every declaration of the file into the data
// the bindings template renders.
func BuildTemplateData(packageName string, file *internal.DeclarationFile) (TemplateData, error) {
	data := TemplateData{
		Pkg:   packageName,
		Calls: []TemplateCall{},
	}

	for i := range file.Calls {
		call, err := buildCall(file.Calls[i])
		if err != nil {
			return data, err
		}
		data.Calls = append(data.Calls, call)
	}

	sort.Slice(data.Calls, func(i, j int) bool {
		if data.Calls[i].GoName == data.Calls[j].GoName {
			return data.Calls[i].Name < data.Calls[j].Name
		}
		return data.Calls[i].GoName < data.Calls[j].GoName
	})

	// Prevent duplicate names.
	seenNames := map[string]bool{
		"Attach": true,
	}
	for i := range data.Calls {
		for seenNames[data.Calls[i].GoName] {
			data.Calls[i].GoName += "_"
		}
		seenNames[data.Calls[i].GoName] = true
	}

	return data, nil
}

func buildCall(cd internal.CallDeclaration) (TemplateCall, error) {
	declaration, err := cd.Resolve()
	if err != nil {
		return TemplateCall{}, err
	}

	returns := cd.Returns
	if returns == "" {
		returns = "void"
	}

	returnExpr, err := typeExpression(returns)
	if err != nil {
		return TemplateCall{}, fmt.Errorf("could not generate return type of call %s: %w", cd.Name, err)
	}

	call := TemplateCall{
		Name:       cd.Name,
		GoName:     generateGoName(cd.Name),
		Class:      cd.Class,
		Method:     cd.Method,
		Signature:  internal.MethodSignature(declaration.Returns, declaration.Arguments...),
		ReturnExpr: returnExpr,
		ReturnType: declaration.Returns.GoType(),
		IsVoid:     declaration.Returns == internal.Void,
	}
	call.ErrorValue = typeNameToErrorValue(call.ReturnType)

	for i := range cd.Arguments {
		expr, err := typeExpression(cd.Arguments[i])
		if err != nil {
			return TemplateCall{}, fmt.Errorf("could not generate argument %d of call %s: %w", i, cd.Name, err)
		}

		call.Arguments = append(call.Arguments, TemplateArgument{
			Name:     "arg" + strconv.Itoa(i),
			TypeName: declaration.Arguments[i].Name(),
			TypeExpr: expr,
			GoType:   declaration.Arguments[i].GoType(),
		})
	}

	return call, nil
}

// singletonExpressions maps the predeclared descriptors to the expression
// naming them in generated code.
var singletonExpressions = map[internal.Type]string{
	internal.Boolean:      "javabind.Boolean",
	internal.Byte:         "javabind.Byte",
	internal.Char:         "javabind.Char",
	internal.Short:        "javabind.Short",
	internal.Int:          "javabind.Int",
	internal.Long:         "javabind.Long",
	internal.Float:        "javabind.Float",
	internal.Double:       "javabind.Double",
	internal.Void:         "javabind.Void",
	internal.Object:       "javabind.Object",
	internal.String:       "javabind.String",
	internal.BoxedBoolean: "javabind.BoxedBoolean",
	internal.BoxedInteger: "javabind.BoxedInteger",
	internal.BoxedLong:    "javabind.BoxedLong",
	internal.BoxedDouble:  "javabind.BoxedDouble",
}

// typeExpression returns the Go expression constructing the type the type
// expression s names.
func typeExpression(s string) (string, error) {
	expr, err := internal.ParseTypeExpr(s)
	if err != nil {
		return "", err
	}

	// Resolve validates the whole expression.
	if _, err := expr.Resolve(); err != nil {
		return "", err
	}

	return goTypeExpression(expr)
}

func goTypeExpression(expr *internal.TypeExpr) (string, error) {
	args := make([]string, len(expr.Args))
	for i := range expr.Args {
		arg, err := goTypeExpression(expr.Args[i])
		if err != nil {
			return "", err
		}
		args[i] = arg
	}

	switch {
	case expr.Name == "array":
		return "javabind.Array(" + args[0] + ")", nil
	case expr.Name == "Pair" || expr.Name == internal.PairClassName:
		return "javabind.Pair(" + args[0] + ", " + args[1] + ")", nil
	case len(args) == 2:
		return "javabind.PairOf(" + strconv.Quote(expr.Name) + ", " + args[0] + ", " + args[1] + ")", nil
	}

	t, err := expr.Resolve()
	if err != nil {
		return "", err
	}
	if name, ok := singletonExpressions[t]; ok {
		return name, nil
	}
	return "javabind.Class(" + strconv.Quote(expr.Name) + ")", nil
}

// generateGoName turns a call name like "run_invoked" into "RunInvoked".
func generateGoName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, part := range parts {
		first, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(part[size:])
	}

	goName := b.String()
	if first, _ := utf8.DecodeRuneInString(goName); goName == "" || unicode.IsDigit(first) {
		goName = "Call" + goName
	}
	return goName
}

func typeNameToErrorValue(goType string) string {
	switch {
	case goType == "any" || strings.HasPrefix(goType, "[]"):
		return "nil"
	case goType == "string":
		return "\"\""
	case goType == "bool":
		return "false"
	}

	// Default other types take 0
	return "0"
}

var TemplateFunctions = template.FuncMap{
	"lower": strings.ToLower,
	"quote": strconv.Quote,
}

// Render executes the bindings template and formats the result.
func Render(data TemplateData) ([]byte, error) {
	tmpl, err := template.New("").
		Funcs(TemplateFunctions). // Custom functions
		ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return ExecuteTemplate(tmpl, "bindings.tmpl", data)
}

func ExecuteTemplate(tmpl *template.Template, name string, data TemplateData) ([]byte, error) {
	writer := bytes.NewBuffer(nil)
	err := tmpl.ExecuteTemplate(writer, name, data)
	if err != nil {
		return nil, err
	}

	fileBytes := writer.Bytes()
	formattedSource, err := format.Source(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("could not format %s: %w\nsource:\n%s", name, err, fileBytes)
	}

	return formattedSource, nil
}

type TemplateData struct {
	Pkg   string
	Calls []TemplateCall
}

type TemplateCall struct {
	Name       string
	GoName     string
	Class      string
	Method     string
	Signature  string
	ReturnExpr string
	ReturnType string
	ErrorValue string
	IsVoid     bool
	Arguments  []TemplateArgument
}

type TemplateArgument struct {
	Name     string
	TypeName string
	TypeExpr string
	GoType   string
}
