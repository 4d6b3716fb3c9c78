package led

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZ drives a WS2812 style strip. LED 1 is the first pixel on the wire.
type NRZ struct {
	mu     sync.Mutex
	dev    io.Writer
	closer func() error
	pixels []byte
	closed bool
}

// OpenNRZ initialises the host drivers and opens a strip of count pixels on
// the named SPI port ("" selects the first one).
func OpenNRZ(port string, count int) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", port, err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = count
	opts.Channels = 3
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("open strip: %w", err)
	}

	return newNRZ(dev, count, func() error {
		if err := dev.Halt(); err != nil {
			_ = p.Close()
			return err
		}
		return p.Close()
	}), nil
}

func newNRZ(dev io.Writer, count int, closer func() error) *NRZ {
	return &NRZ{dev: dev, closer: closer, pixels: make([]byte, 3*count)}
}

func (n *NRZ) SetLED(index int, rgb [3]uint8) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 1 || 3*index > len(n.pixels) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	copy(n.pixels[3*(index-1):], rgb[:])
	return nil
}

func (n *NRZ) Flush() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrClosed
	}
	if _, err := n.dev.Write(n.pixels); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	if n.closer == nil {
		return nil
	}
	return n.closer()
}
