//go:build windows

package binding

// #include <stdint.h>
// #include <stdlib.h>
//
// #if defined(__i386__)
// #define AUTOSAVER_FASTCALL __attribute__((fastcall))
// #else
// #define AUTOSAVER_FASTCALL
// #endif
//
// typedef int (AUTOSAVER_FASTCALL *autosaver_save_project_f)(void* editp, const char* path);
//
// static uintptr_t autosaver_read_slot(uintptr_t slot) {
//     return *(volatile uintptr_t*)slot;
// }
//
// static int autosaver_call_save(uintptr_t fn, uintptr_t editp, const char* path) {
//     return ((autosaver_save_project_f)fn)((void*)editp, path);
// }
import "C"
import "unsafe"

var platformCaller caller = hostCaller{}

// hostCaller calls into the host process through a C trampoline, which
// supplies the __fastcall convention Go cannot produce.
type hostCaller struct{}

func (hostCaller) readSlot(addr uintptr) uintptr {
	return uintptr(C.autosaver_read_slot(C.uintptr_t(addr)))
}

func (hostCaller) save(fn uintptr, editp uintptr, path []byte) bool {
	cpath := C.CBytes(append(path[:len(path):len(path)], 0))
	defer C.free(cpath)

	return C.autosaver_call_save(C.uintptr_t(fn), C.uintptr_t(editp), (*C.char)(cpath)) != 0
}
