// Package plugin holds the metadata a filter plugin advertises to AviUtl.
package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/autosaver/pkg/aviutl"
)

// maxNameBytes bounds the filter name the host shows in its menus.
const maxNameBytes = 64

// Info contains filter metadata
type Info struct {
	Name        string            // Filter name shown in the host's filter menu
	Information string            // Text shown in the host's plugin list
	Flags       aviutl.FilterFlag // FILTER_DLL.flag
}

// Validate checks that the host can register the filter.
func (i Info) Validate() error {
	if i.Name == "" {
		return errors.New("filter name cannot be empty")
	}
	if len(i.Name) > maxNameBytes {
		return fmt.Errorf("filter name %q longer than %d bytes", i.Name, maxNameBytes)
	}
	if i.Flags&aviutl.FlagExInformation != 0 && i.Information == "" {
		return errors.New("information flag set without information text")
	}
	return nil
}

// Has reports whether every bit of f is set.
func (i Info) Has(f aviutl.FilterFlag) bool {
	return i.Flags&f == f
}
