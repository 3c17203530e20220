//go:build !windows

package narrow

// System returns UTF-8 on platforms without ANSI code pages.
func System() Encoding {
	return ForCodePage(CodePageUTF8)
}
