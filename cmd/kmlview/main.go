package main

import (
	"github.com/beetlebugorg/kml/cmd/kmlview/cmd"
)

func main() {
	cmd.Execute()
}
