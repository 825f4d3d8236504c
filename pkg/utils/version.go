package utils

import "fmt"

const version = "0.1.0"

// GetVersion returns the current version of the package
func GetVersion() string {
	return fmt.Sprintf("you are using deploy-preview version %s", version)
}
