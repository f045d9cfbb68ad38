// latebot counts how often chat users announce they will be late.
// Messages are matched against fuzzy target phrases, tolerant of typos,
// punctuation, and a few interleaved words.
package main

import (
	"os"

	"github.com/corey/latebot/cmd/latebot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
