package main

import "os"

func main() {
	defer cleanup()
	os.Exit(1) // want "direct call to os.Exit is not allowed in main"
}

func cleanup() {
	os.Exit(2)
}
