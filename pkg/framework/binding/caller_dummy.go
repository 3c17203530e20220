//go:build !windows

package binding

var platformCaller caller
