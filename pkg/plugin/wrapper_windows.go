//go:build windows

package plugin

// #cgo CFLAGS: -I${SRCDIR}/../aviutl
// #include "aviutl.h"
//
// FILTER_DLL* autosaver_filter_table(int flag, char* name, char* information);
import "C"
import (
	"sync"
	"unsafe"

	"github.com/justyntemme/autosaver/pkg/aviutl"
)

var (
	filterTable     *C.FILTER_DLL
	filterTableOnce sync.Once
)

// GetFilterTable is looked up by name when AviUtl loads the plugin. The
// descriptor and its strings live for the rest of the process.
//
//export GetFilterTable
func GetFilterTable() *C.FILTER_DLL {
	f := registered()
	if f == nil {
		return nil
	}

	filterTableOnce.Do(func() {
		info := f.Info()
		filterTable = C.autosaver_filter_table(
			C.int(info.Flags),
			C.CString(info.Name),
			C.CString(info.Information),
		)
	})
	return filterTable
}

//export goFilterInit
func goFilterInit(fp *C.FILTER) C.BOOL {
	return cbool(dispatchInit(aviutl.FromFilter(unsafe.Pointer(fp))))
}

//export goFilterProc
func goFilterProc(fp *C.FILTER, fpip *C.FILTER_PROC_INFO) C.BOOL {
	host := aviutl.FromFilter(unsafe.Pointer(fp))
	return cbool(dispatchProc(host, aviutl.EditHandleOf(unsafe.Pointer(fpip))))
}

//export goFilterExit
func goFilterExit(fp *C.FILTER) C.BOOL {
	return cbool(dispatchExit(aviutl.FromFilter(unsafe.Pointer(fp))))
}

func cbool(b bool) C.BOOL {
	if b {
		return C.TRUE
	}
	return C.FALSE
}
