package binding

import (
	"bytes"

	"github.com/hashicorp/go-hclog"

	"github.com/justyntemme/autosaver/pkg/framework/narrow"
)

// Invoker saves the current project through a Binding. It implements
// state.Saver.
type Invoker struct {
	binding *Binding
	enc     narrow.Encoding
	log     hclog.Logger
}

// NewInvoker returns an Invoker that encodes paths with enc.
func NewInvoker(b *Binding, enc narrow.Encoding, log hclog.Logger) *Invoker {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Invoker{binding: b, enc: enc, log: log}
}

// Save asks the host to save the active project to path. It does not retry.
func (i *Invoker) Save(path string) bool {
	encoded, err := i.enc.Encode(path)
	if err != nil {
		i.log.Warn("cannot pass autosave path to host", "path", path, "error", err)
		return false
	}
	if bytes.IndexByte(encoded, 0) >= 0 {
		i.log.Warn("autosave path contains NUL", "path", path)
		return false
	}

	return i.binding.InvokeSave(i.binding.EditHandle(), encoded)
}
