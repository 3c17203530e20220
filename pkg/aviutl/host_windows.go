//go:build windows

package aviutl

// #cgo CFLAGS: -I${SRCDIR}
// #include "aviutl.h"
//
// static BOOL autosaver_get_sys_info(FILTER* fp, uintptr_t editp, SYS_INFO* si) {
//     if (fp == NULL || fp->exfunc == NULL || fp->exfunc->get_sys_info == NULL) {
//         return FALSE;
//     }
//     return fp->exfunc->get_sys_info((void*)editp, si);
// }
//
// static uintptr_t autosaver_proc_editp(FILTER_PROC_INFO* fpip) {
//     return fpip ? (uintptr_t)fpip->editp : 0;
// }
import "C"
import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/justyntemme/autosaver/pkg/framework/narrow"
)

const maxModulePath = 32768

// filterHost implements Host on top of the FILTER pointer AviUtl passes to
// every callback.
type filterHost struct {
	fp  *C.FILTER
	enc narrow.Encoding
}

// FromFilter wraps the FILTER* received in a host callback.
func FromFilter(fp unsafe.Pointer) Host {
	return &filterHost{
		fp:  (*C.FILTER)(fp),
		enc: narrow.System(),
	}
}

// EditHandleOf extracts editp from a FILTER_PROC_INFO*.
func EditHandleOf(fpip unsafe.Pointer) EditHandle {
	return EditHandle(C.autosaver_proc_editp((*C.FILTER_PROC_INFO)(fpip)))
}

func (h *filterHost) SysInfo(editp EditHandle) SysInfo {
	var si C.SYS_INFO
	if C.autosaver_get_sys_info(h.fp, C.uintptr_t(editp), &si) == 0 {
		return SysInfo{}
	}

	info := SysInfo{Build: int(si.build)}
	if si.project_name != nil {
		// project_name is in the ANSI code page.
		raw := C.GoString((*C.char)(unsafe.Pointer(si.project_name)))
		info.ProjectName = h.enc.Decode([]byte(raw))
	}
	return info
}

func (h *filterHost) ModuleBase() (uintptr, error) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return 0, fmt.Errorf("get host module handle: %w", err)
	}
	return uintptr(module), nil
}

func (h *filterHost) PluginPath() (string, error) {
	if h.fp == nil {
		return "", fmt.Errorf("plugin path: no filter")
	}
	module := windows.Handle(uintptr(unsafe.Pointer(h.fp.dll_hinst)))

	buf := make([]uint16, maxModulePath)
	n, err := windows.GetModuleFileName(module, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("plugin path: %w", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (h *filterHost) MessageBox(text, caption string) {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return
	}
	c, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		return
	}

	var owner windows.HWND
	if h.fp != nil {
		owner = windows.HWND(uintptr(unsafe.Pointer(h.fp.hwnd)))
	}
	windows.MessageBox(owner, t, c, windows.MB_ICONINFORMATION)
}
