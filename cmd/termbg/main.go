// Command termbg reports the terminal's background color and theme.
package main

import (
	"errors"
	"log"
	"os"
)

// version is set via ldflags
var version = "dev"

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		var coded *exitError
		if errors.As(err, &coded) {
			if coded.err != nil {
				log.Print("termbg: ", coded.err)
			}
			os.Exit(coded.code)
		}
		log.Print("termbg: ", err)
		os.Exit(exitConfig)
	}
}
