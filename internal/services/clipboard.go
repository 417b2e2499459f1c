package services

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard receives PNG snapshots of the figure.
type Clipboard interface {
	WriteImage(png []byte) error
}

// SystemClipboard writes to the OS image clipboard. The clipboard is
// initialised on first use.
type SystemClipboard struct {
	once    sync.Once
	initErr error
}

// NewSystemClipboard returns the OS clipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

func (c *SystemClipboard) WriteImage(png []byte) error {
	c.once.Do(func() {
		c.initErr = clipboard.Init()
	})
	if c.initErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", c.initErr)
	}
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
