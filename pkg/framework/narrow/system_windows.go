//go:build windows

package narrow

import "golang.org/x/sys/windows"

// System returns the encoding of the process's active ANSI code page.
func System() Encoding {
	return ForCodePage(windows.GetACP())
}
