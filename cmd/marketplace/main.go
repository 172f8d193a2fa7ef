// Command marketplace is the command-line shell for the community
// marketplace.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/mesh-intelligence/marketplace/internal/cli"
)

func main() {
	loadDotEnv(os.Stderr, ".env")
	cli.Execute()
}

// loadDotEnv loads path into the environment. A missing file is normal;
// any other failure is reported on w and the command still runs.
func loadDotEnv(w io.Writer, path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "warning: loading %s: %v\n", path, err)
	}
}
