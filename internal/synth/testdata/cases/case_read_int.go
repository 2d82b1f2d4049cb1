package cases

import (
	"os"
	"strconv"
)

// ReadInt reads a decimal integer from the file at path.
//errsum:errors *io/fs.PathError, *strconv.NumError
func ReadInt(path string) int64 {
	raw, _ := os.ReadFile(path)
	n, _ := strconv.ParseInt(string(raw), 10, 64)
	return n
}
