package printer

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends a finished ESC/POS stream to a receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the printer can currently be reached.
	Ready(ctx context.Context) bool
	// Kind names the sink, e.g. "usb" or "network".
	Kind() string
	Close() error
}

// Config selects and addresses a printer.
type Config struct {
	Type    string // usb, network, file or none
	USBPath string
	Address string
	Timeout time.Duration
}

// New returns the printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for usb printers")
		}
		return &devicePrinter{kind: "usb", path: cfg.USBPath}, nil
	case "file":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: a path is required for file printers")
		}
		return &devicePrinter{kind: "file", path: cfg.USBPath, create: true}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &networkPrinter{address: cfg.Address, timeout: timeout}, nil
	case "none", "":
		return NullPrinter{}, nil
	}
	return nil, fmt.Errorf("printer: unknown type %q (use usb, network, file or none)", cfg.Type)
}

// devicePrinter writes each job to a device node such as /dev/usb/lp0, or
// appends to a regular file when create is set.
type devicePrinter struct {
	kind   string
	path   string
	create bool
	mu     sync.Mutex
}

func (p *devicePrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	flags := os.O_WRONLY
	if p.create {
		flags |= os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(p.path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Ready(context.Context) bool {
	if p.create {
		return true
	}
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *devicePrinter) Kind() string { return p.kind }

func (p *devicePrinter) Close() error { return nil }

// networkPrinter speaks raw TCP, usually port 9100.
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.timeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return "network" }

func (p *networkPrinter) Close() error { return nil }

// WriterPrinter sends jobs to any io.Writer, e.g. stdout for a preview.
type WriterPrinter struct {
	W io.Writer
}

func (p WriterPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.W.Write(data)
	return err
}

func (p WriterPrinter) Ready(context.Context) bool { return p.W != nil }
func (p WriterPrinter) Kind() string               { return "writer" }
func (p WriterPrinter) Close() error               { return nil }

// NullPrinter discards jobs. It is used when no printer is configured.
type NullPrinter struct{}

func (NullPrinter) Print(context.Context, []byte) error { return nil }
func (NullPrinter) Ready(context.Context) bool          { return false }
func (NullPrinter) Kind() string                        { return "none" }
func (NullPrinter) Close() error                        { return nil }
