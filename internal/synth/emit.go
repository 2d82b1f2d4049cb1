package synth

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/errsum/errsum/internal/decl"
	"github.com/errsum/errsum/internal/naming"
)

// variant is one resolved case of the synthesized error type.
type variant struct {
	// name is the variant identifier, unique per declaration by caller
	// contract only.
	name string

	// payload is the Go type expression of the wrapped value as it appears
	// in the generated file, e.g. "*fs.PathError".
	payload string

	// importPath is the package the payload type comes from, empty for
	// types of the annotated file's own package.
	importPath string

	// ref is the reference as written in the directive, for diagnostics.
	ref string
}

// resolveVariants maps the extracted declaration to variants, in declaration
// order. Exactly one variant per entry, always.
func resolveVariants(d decl.Declaration) []variant {
	vars := make([]variant, 0, len(d))
	for _, e := range d {
		payload, importPath := payloadType(e.Ref)
		vars = append(vars, variant{
			name:       naming.VariantName(e.Ref, e.Alias),
			payload:    payload,
			importPath: importPath,
			ref:        e.Ref,
		})
	}

	return vars
}

// payloadType renders the in-file type expression for a declared reference:
// io/fs.PathError is referred to as fs.PathError and needs the io/fs import.
// The package identifier is assumed to match the last import path element.
func payloadType(ref string) (expr, importPath string) {
	ptr := strings.HasPrefix(ref, "*")
	ref = strings.TrimPrefix(ref, "*")

	i := strings.LastIndex(ref, ".")
	if i < 0 {
		// A type of the annotated file's own package.
		if ptr {
			return "*" + ref, ""
		}

		return ref, ""
	}

	importPath = ref[:i]
	name := ref[i+1:]
	pkg := importPath[strings.LastIndex(importPath, "/")+1:]

	expr = pkg + "." + name
	if ptr {
		expr = "*" + expr
	}

	return expr, importPath
}

// checkCollisions is the optional pre-flight duplicate diagnostic. By
// default duplicates are passed through and left for the compiler of the
// generated code to reject.
func checkCollisions(vars []variant) error {
	seen := make(map[string]string, len(vars))
	for _, v := range vars {
		if prev, ok := seen[v.name]; ok {
			return fmt.Errorf("variant name %s is produced by both %s and %s", v.name, prev, v.ref)
		}

		seen[v.name] = v.ref
	}

	return nil
}

// errorTypeName derives the synthesized type name from the function name,
// preserving the function's exportedness: ReadInt yields ReadIntError,
// readInt yields readIntError.
func errorTypeName(fnName string) string {
	name := strcase.ToCamel(fnName)
	if !token.IsExported(fnName) {
		name = lowerFirst(name)
	}

	return name + "Error"
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// generator accumulates generated source text.
type generator struct {
	buf bytes.Buffer
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

// emit renders all declarations synthesized for one annotated function: the
// kind-tagged wrapper struct, the kind tag type with its constants and
// String, the error interface assertion, the delegating methods and one
// total constructor per variant.
func emit(fnName string, vars []variant) string {
	t := errorTypeName(fnName)
	kind := t + "Kind"
	names := lowerFirst(t) + "KindNames"

	var g generator

	g.printf("// %s is the error returned by [%s].\n", t, fnName)
	g.printf("type %s struct {\n", t)
	g.printf("\tkind %s\n", kind)
	g.printf("\terr  error\n")
	g.printf("}\n\n")

	g.printf("// %s tags the source error kind wrapped by [%s].\n", kind, t)
	g.printf("type %s int\n\n", kind)

	if len(vars) > 0 {
		g.printf("const (\n")
		for i, v := range vars {
			if i == 0 {
				g.printf("\t%s%s %s = iota\n", t, v.name, kind)
				continue
			}

			g.printf("\t%s%s\n", t, v.name)
		}
		g.printf(")\n\n")
	}

	g.printf("var %s = map[%s]string{", names, kind)
	if len(vars) > 0 {
		g.printf("\n")
		for _, v := range vars {
			g.printf("\t%s%s: %q,\n", t, v.name, v.name)
		}
	}
	g.printf("}\n\n")

	g.printf("func (k %s) String() string {\n", kind)
	g.printf("\tv, ok := %s[k]\n", names)
	g.printf("\tif !ok {\n")
	g.printf("\t\treturn fmt.Sprintf(\"invalid(%%d)\", k)\n")
	g.printf("\t}\n\n")
	g.printf("\treturn v\n")
	g.printf("}\n\n")

	g.printf("var _ error = (*%s)(nil)\n\n", t)

	g.printf("// Kind reports which source error kind the value wraps.\n")
	g.printf("func (e *%s) Kind() %s { return e.kind }\n\n", t, kind)

	g.printf("// Error delegates to the wrapped source error.\n")
	g.printf("func (e *%s) Error() string { return e.err.Error() }\n\n", t)

	g.printf("// Unwrap returns the wrapped source error.\n")
	g.printf("func (e *%s) Unwrap() error { return e.err }\n", t)

	for _, v := range vars {
		ctor := ctorName(fnName, t, v.name)
		g.printf("\n// %s wraps %s into [%s].\n", ctor, v.payload, t)
		g.printf("func %s(err %s) *%s {\n", ctor, v.payload, t)
		g.printf("\treturn &%s{kind: %s%s, err: err}\n", t, t, v.name)
		g.printf("}\n")
	}

	return g.buf.String()
}

// ctorName follows the type's exportedness: NewReadIntErrorIoFsPath for an
// exported function, newReadIntErrorIoFsPath otherwise.
func ctorName(fnName, typeName, variantName string) string {
	name := "New" + upperFirst(typeName) + variantName
	if !token.IsExported(fnName) {
		name = lowerFirst(name)
	}

	return name
}
