// Package plugin provides the AviUtl filter plugin framework
package plugin

import (
	"github.com/justyntemme/autosaver/pkg/aviutl"
	"github.com/justyntemme/autosaver/pkg/framework/plugin"
)

// Filter is the main interface that users implement
type Filter interface {
	// Info returns filter metadata
	Info() plugin.Info

	// Init is called once after the host loads the plugin. Returning an
	// error makes the host drop the filter.
	Init(host aviutl.Host) error

	// Proc is called for every frame the host processes
	Proc(host aviutl.Host, editp aviutl.EditHandle) error

	// Exit is called once before the host unloads the plugin
	Exit(host aviutl.Host) error
}
