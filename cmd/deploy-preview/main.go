package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) == 1 {
		os.Args = append([]string{os.Args[0]}, "default")
	}
	if err := rootCmd.Execute(); err != nil {
		reportErrorAndExit("", fmt.Sprintf("Error occured during command exec: %v", err), 8)
	}
}
