package cases

import (
	"os"
)

// Touch refreshes the marker file. Every argument below is malformed, so the
// synthesized type ends up with zero variants.
//errsum:errors ???, = "x", os.Getenv() bad
func Touch(path string) {
	_, _ = os.Stat(path)
}
