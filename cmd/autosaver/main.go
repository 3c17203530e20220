// Command autosaver builds the AviUtl filter plugin.
//
//	GOOS=windows GOARCH=386 CGO_ENABLED=1 go build -buildmode=c-shared -o autosaver.auf ./cmd/autosaver
package main

import (
	"github.com/justyntemme/autosaver/pkg/autosaver"
	"github.com/justyntemme/autosaver/pkg/plugin"
)

func init() {
	// Register our filter
	plugin.Register(autosaver.New())
}

// Required for c-shared build mode
func main() {}
