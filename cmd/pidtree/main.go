//go:build !js && !wasip1 && !plan9

package main

import (
	"os"

	"github.com/pranshuparmar/pidtree/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
