package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		ref  string
		want []string
	}{
		{"io/fs.PathError", []string{"io", "fs", "PathError"}},
		{"strconv.NumError", []string{"strconv", "NumError"}},
		{"*net.OpError", []string{"net", "OpError"}},
		{"example.com/pkg/codec.Error", []string{"example", "com", "pkg", "codec", "Error"}},
		{"ParseError", []string{"ParseError"}},
		{"  io/fs.PathError ", []string{"io", "fs", "PathError"}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.ref))
		})
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"io/fs.PathError", "IoFsPath"},
		{"strconv.NumError", "StrconvNum"},
		{"encoding/json.SyntaxError", "EncodingJsonSyntax"},
		{"*net.OpError", "NetOp"},
		{"example.com/pkg/codec.Error", "ExampleComPkgCodec"},
		// The whole segment vanishes once "Error" is stripped.
		{"errors.Error", "Errors"},
		{"ParseError", "Parse"},
		// "Error" is removed everywhere it occurs, not just as a suffix.
		{"pkg.ErrorOfErrors", "PkgOfs"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.ref))
		})
	}
}

func TestDeriveDeterminism(t *testing.T) {
	const ref = "example.com/deep/path/pkg.WeirdIOError"

	first := Derive(ref)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Derive(ref))
	}
}

func TestVariantName(t *testing.T) {
	// Alias is verbatim: no cleaning, no case transformation.
	assert.Equal(t, "Codec", VariantName("encoding/gob.Error", "Codec"))
	assert.Equal(t, "weird_alias", VariantName("io/fs.PathError", "weird_alias"))
	assert.Equal(t, "KeepsError", VariantName("io/fs.PathError", "KeepsError"))

	// No alias falls back to derivation.
	assert.Equal(t, "IoFsPath", VariantName("io/fs.PathError", ""))
}
