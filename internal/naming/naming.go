// Package naming derives variant identifiers from qualified error type
// references.
//
// A qualified reference such as io/fs.PathError is globally distinguishing
// but visually redundant as a tag: nearly every segment carries the word
// "Error". The derivation strips that word from every segment, camel-cases
// what remains and concatenates the pieces in path order, yielding a compact
// readable identifier (io/fs.PathError → IoFsPath). An explicit alias
// bypasses the derivation entirely.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Segments splits a qualified type reference into its ordered path segments.
//
// The reference has the form [*][import/path.]TypeName. The import path is
// split on "/", host-like elements (example.com) are split further on ".",
// and the type name is the final segment. A leading "*" marks a pointer
// payload and does not participate in naming.
func Segments(ref string) []string {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "*")

	path := ""
	name := ref
	if i := strings.LastIndex(ref, "."); i >= 0 {
		path, name = ref[:i], ref[i+1:]
	}

	var segs []string
	if path != "" {
		for _, elem := range strings.Split(path, "/") {
			segs = append(segs, strings.Split(elem, ".")...)
		}
	}

	return append(segs, name)
}

// Derive maps a qualified reference to its default variant name.
//
// Every occurrence of the literal substring "Error" is removed from each
// segment before camel-casing, so strconv.NumError becomes StrconvNum and
// a bare codec.Error collapses to Codec. The derivation is total over any
// non-empty reference and deterministic across invocations.
func Derive(ref string) string {
	var b strings.Builder
	for _, seg := range Segments(ref) {
		cleaned := strings.ReplaceAll(seg, "Error", "")
		if cleaned == "" {
			continue
		}

		b.WriteString(strcase.ToCamel(cleaned))
	}

	return b.String()
}

// VariantName resolves the final variant identifier for a declared error
// kind. An explicit alias is used verbatim, with no cleaning and no case
// transformation; otherwise the name is derived from the reference.
func VariantName(ref, alias string) string {
	if alias != "" {
		return alias
	}

	return Derive(ref)
}
