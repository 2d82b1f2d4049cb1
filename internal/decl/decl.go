// Package decl extracts error-kind declarations from errsum directive
// comments.
//
// A directive is a comment line of the form
//
//	//errsum:errors io/fs.PathError, strconv.NumError = "Parse"
//
// attached to a function declaration. Its argument list is an ordered,
// comma-separated sequence of qualified error type references, each with an
// optional quoted alias. The extractor turns that list into a Declaration;
// what happens to arguments it cannot parse depends on the mode: lenient
// extraction drops them silently, strict extraction fails on the first one.
package decl

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// Entry is a single declared error kind.
type Entry struct {
	// Ref is the qualified source error type as written in the directive,
	// e.g. "io/fs.PathError" or "*net.OpError".
	Ref string

	// Alias overrides the derived variant name when non-empty. It is taken
	// verbatim from the quoted string of the directive argument.
	Alias string
}

// Declaration is the ordered list of declared error kinds of one directive.
// Order is preserved from the argument list and becomes variant order in the
// generated type. Duplicate references are not validated here: they yield
// duplicate variants downstream, which is the caller's responsibility.
type Declaration []Entry

// Directive reports the argument text of the first "//<tool>:errors" line
// within the comment group, and whether such a line exists at all.
func Directive(doc *ast.CommentGroup, tool string) (args string, ok bool) {
	c, ok := Comment(doc, tool)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(strings.TrimPrefix(c.Text, "//"+tool+":errors")), true
}

// Comment returns the directive comment node itself, for callers that need
// its position within the source file.
func Comment(doc *ast.CommentGroup, tool string) (*ast.Comment, bool) {
	if doc == nil {
		return nil, false
	}

	prefix := "//" + tool + ":errors"
	for _, c := range doc.List {
		rest, found := strings.CutPrefix(c.Text, prefix)
		if !found {
			continue
		}

		// Guard against longer directive names sharing the prefix.
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		return c, true
	}

	return nil, false
}

// Parse builds the Declaration out of a directive argument list.
//
// In lenient mode (strict=false) every malformed argument is silently
// dropped and no error is ever returned: a fully garbled list simply yields
// an empty Declaration. In strict mode the first malformed argument fails
// the parse with a diagnostic naming it.
func Parse(args string, strict bool) (Declaration, error) {
	var d Declaration
	for _, arg := range splitArgs(args) {
		e, err := parseEntry(arg)
		if err != nil {
			if strict {
				return nil, err
			}

			continue
		}

		d = append(d, e)
	}

	return d, nil
}

// splitArgs splits the argument list on commas outside quoted aliases.
func splitArgs(args string) []string {
	var (
		out     []string
		start   int
		quoted  bool
		escaped bool
	)

	for i, r := range args {
		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, args[start:i])
			start = i + 1
		}
	}

	return append(out, args[start:])
}

func parseEntry(arg string) (Entry, error) {
	ref, alias, hasAlias := strings.Cut(arg, "=")
	ref = strings.TrimSpace(ref)
	if err := checkRef(ref); err != nil {
		return Entry{}, fmt.Errorf("argument %q: %w", strings.TrimSpace(arg), err)
	}

	if !hasAlias {
		return Entry{Ref: ref}, nil
	}

	unquoted, err := strconv.Unquote(strings.TrimSpace(alias))
	if err != nil || unquoted == "" {
		return Entry{}, fmt.Errorf("argument %q: alias must be a non-empty quoted string", strings.TrimSpace(arg))
	}

	return Entry{Ref: ref, Alias: unquoted}, nil
}

// checkRef validates the [*][import/path.]TypeName shape of a reference.
func checkRef(ref string) error {
	orig := ref
	ref = strings.TrimPrefix(ref, "*")
	if ref == "" {
		return fmt.Errorf("empty error type reference")
	}

	for _, r := range ref {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("./-_", r) {
			continue
		}

		return fmt.Errorf("unexpected character %q in error type reference %q", r, orig)
	}

	name := ref[strings.LastIndex(ref, ".")+1:]
	if !token.IsIdentifier(name) {
		return fmt.Errorf("error type reference %q has no valid type name", orig)
	}

	return nil
}
