package speech

import (
	"context"
	"io"
)

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	if c.ReadCloser == nil {
		return nil
	}
	return c.ReadCloser.Close()
}

func (c *cancelOnClose) Read(p []byte) (int, error) {
	if c.ReadCloser == nil {
		return 0, io.EOF
	}
	return c.ReadCloser.Read(p)
}
