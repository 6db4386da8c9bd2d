package cli

import "github.com/atotto/clipboard"

// clipboardCopier copies rendered manifests for pasting into deployment tools.
type clipboardCopier interface {
	Copy(text string) error
}

// systemClipboard writes to the operating system clipboard.
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ clipboardCopier = systemClipboard{}
