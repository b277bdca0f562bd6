package service

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no system clipboard can be used.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives copied recovery words.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard (pbcopy, xclip, xsel, wl-copy or
// the Windows API, whichever atotto/clipboard finds).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// DisabledClipboard refuses every write. Used when ui.clipboard is off.
type DisabledClipboard struct{}

func (DisabledClipboard) WriteAll(string) error { return ErrClipboardUnavailable }

// NewClipboard picks the clipboard for the configured setting.
func NewClipboard(enabled bool) Clipboard {
	if !enabled {
		return DisabledClipboard{}
	}
	return SystemClipboard{}
}
