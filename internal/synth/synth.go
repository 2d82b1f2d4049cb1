// Package synth generates, per annotated function, a combined error type
// wrapping any of the function's declared source error kinds, and rewrites
// the function's result list to return it.
//
// The function body is never inspected or altered. Each directive is
// processed independently; the whole transformation is a pure function from
// the input file to the rewritten one.
package synth

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/errsum/errsum/internal/config"
	"github.com/errsum/errsum/internal/decl"
)

// Options controls a single Generate run.
type Options struct {
	// Strict fails generation on malformed directive arguments instead of
	// dropping them silently.
	Strict bool

	// CheckCollisions fails generation when two declared kinds resolve to
	// the same variant name. Off by default: the compiler of the generated
	// code reports the clash instead.
	CheckCollisions bool

	// Directive is the tool prefix of the directive comment. Empty means
	// config.DefaultDirective.
	Directive string
}

// edit is a textual replacement of src[start:end].
type edit struct {
	start, end int
	text       string
}

// Generate rewrites one Go source file: every function carrying an
// "//<tool>:errors" directive gets its directive line consumed, its result
// list extended with the synthesized error type, and the synthesized
// declarations emitted right after it. Files without directives are returned
// unchanged.
//
// A directive attached to a non-function declaration is fatal: an error is
// returned and no output is produced.
func Generate(filename string, src []byte, opts Options) ([]byte, error) {
	tool := opts.Directive
	if tool == "" {
		tool = config.DefaultDirective
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	tokFile := fset.File(file.Pos())

	imported := make(map[string]bool)
	for _, imp := range file.Imports {
		if path, err := strconv.Unquote(imp.Path.Value); err == nil {
			imported[path] = true
		}
	}

	var (
		edits       []edit
		needImports = make(map[string]bool)
	)

	for _, d := range file.Decls {
		switch dd := d.(type) {
		case *ast.GenDecl:
			if err := rejectNonFunction(dd, tool); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}

		case *ast.FuncDecl:
			fnEdits, paths, err := processFunc(tokFile, src, dd, tool, opts)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}

			edits = append(edits, fnEdits...)
			for _, p := range paths {
				if !imported[p] {
					needImports[p] = true
				}
			}
		}
	}

	if len(edits) == 0 {
		return src, nil
	}

	if !imported["fmt"] {
		// The kind String method needs it.
		needImports["fmt"] = true
	}

	if len(needImports) > 0 {
		edits = append(edits, importEdit(file, tokFile, src, needImports))
	}

	out := apply(src, edits)

	res, err := imports.Process(filename, out, nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", filename, err)
	}

	return res, nil
}

// rejectNonFunction is the single fatal usage error: the directive makes
// sense on functions only.
func rejectNonFunction(gd *ast.GenDecl, tool string) error {
	docs := []*ast.CommentGroup{gd.Doc}
	for _, spec := range gd.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			docs = append(docs, s.Doc)
		case *ast.ValueSpec:
			docs = append(docs, s.Doc)
		}
	}

	for _, doc := range docs {
		if _, ok := decl.Directive(doc, tool); ok {
			return fmt.Errorf("the //%s:errors directive can only be applied to functions", tool)
		}
	}

	return nil
}

// processFunc handles one annotated function and returns the edits for it
// plus the import paths its variant payloads require.
func processFunc(tokFile *token.File, src []byte, fd *ast.FuncDecl, tool string, opts Options) ([]edit, []string, error) {
	args, ok := decl.Directive(fd.Doc, tool)
	if !ok {
		return nil, nil, nil
	}

	declaration, err := decl.Parse(args, opts.Strict)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", fd.Name.Name, err)
	}

	vars := resolveVariants(declaration)
	if opts.CheckCollisions {
		if err := checkCollisions(vars); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", fd.Name.Name, err)
		}
	}

	var edits []edit

	// Consume the directive line: the rewritten function must not trigger
	// generation again.
	c, _ := decl.Comment(fd.Doc, tool)
	start := tokFile.Offset(c.Pos())
	end := tokFile.Offset(c.End())
	if end < len(src) && src[end] == '\n' {
		end++
	}
	edits = append(edits, edit{start: start, end: end})

	edits = append(edits, rewriteResults(tokFile, src, fd))

	at := tokFile.Offset(fd.End())
	edits = append(edits, edit{start: at, end: at, text: "\n\n" + emit(fd.Name.Name, vars)})

	var paths []string
	for _, v := range vars {
		if v.importPath != "" {
			paths = append(paths, v.importPath)
		}
	}

	return edits, paths, nil
}

// rewriteResults extends the function's result list with the synthesized
// error type: () becomes *FnError, T becomes (T, *FnError). Everything else
// about the signature and the body stays byte for byte.
func rewriteResults(tokFile *token.File, src []byte, fd *ast.FuncDecl) edit {
	errType := "*" + errorTypeName(fd.Name.Name)

	r := fd.Type.Results
	if r == nil {
		at := tokFile.Offset(fd.Type.Params.End())
		return edit{start: at, end: at, text: " " + errType}
	}

	start := tokFile.Offset(r.Pos())
	end := tokFile.Offset(r.End())

	inner := string(src[start:end])
	if r.Opening.IsValid() {
		inner = strings.TrimSuffix(strings.TrimPrefix(inner, "("), ")")
	}

	field := errType
	if resultsNamed(r) {
		field = resultName(fd) + " " + errType
	}

	return edit{start: start, end: end, text: "(" + inner + ", " + field + ")"}
}

func resultsNamed(r *ast.FieldList) bool {
	for _, f := range r.List {
		if len(f.Names) > 0 {
			return true
		}
	}

	return false
}

// resultName picks a name for the appended result when the original results
// are named: plain "err" unless the signature already uses it.
func resultName(fd *ast.FuncDecl) string {
	taken := func(name string) bool {
		lists := []*ast.FieldList{fd.Type.Params, fd.Type.Results}
		for _, l := range lists {
			if l == nil {
				continue
			}

			for _, f := range l.List {
				for _, n := range f.Names {
					if n.Name == name {
						return true
					}
				}
			}
		}

		return false
	}

	if !taken("err") {
		return "err"
	}

	return "errv"
}

// importEdit splices the missing import paths in: into the first
// parenthesized import group when the file has one, as a fresh import
// declaration after the package clause otherwise. The final goimports pass
// sorts whatever this produces.
func importEdit(file *ast.File, tokFile *token.File, src []byte, paths map[string]bool) edit {
	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT || !gd.Lparen.IsValid() {
			continue
		}

		at := tokFile.Offset(gd.Rparen)

		var b strings.Builder
		if at == 0 || src[at-1] != '\n' {
			// Keeps a one-line import group intact, and in one block: a
			// blank line would split it into separately sorted groups.
			b.WriteString("\n")
		}
		for _, p := range sorted {
			fmt.Fprintf(&b, "\t%q\n", p)
		}

		return edit{start: at, end: at, text: b.String()}
	}

	var b strings.Builder
	b.WriteString("\n\nimport (\n")
	for _, p := range sorted {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	b.WriteString(")")

	at := tokFile.Offset(file.Name.End())
	return edit{start: at, end: at, text: b.String()}
}

// apply performs the edits back to front so earlier offsets stay valid.
func apply(src []byte, edits []edit) []byte {
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range edits {
		out = append(out[:e.start], append([]byte(e.text), out[e.end:]...)...)
	}

	return out
}
