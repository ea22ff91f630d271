//go:build !windows

package tokens

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes via temp file + rename so readers never see a partial token file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
