// Command lecturectl generates lectures from the terminal and manages the schema.
package main

import (
	"errors"
	"os"

	"kids-lecture/api/cmd/lecturectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
