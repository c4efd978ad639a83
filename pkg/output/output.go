// Package output delivers rendered documents: archived to a directory, sent
// to a network printer, or dropped.
package output

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Saver is the interface for persisting a downloaded document.
type Saver interface {
	// Save stores data under name.
	Save(ctx context.Context, name string, data []byte) error
	// Ready reports whether the destination is reachable.
	Ready() bool
}

// --- Directory saver (writes <dir>/<name>) ---

type dirSaver struct {
	dir string
}

// NewDirSaver creates a saver that writes files into dir, creating it on demand.
func NewDirSaver(dir string) Saver {
	return &dirSaver{dir: dir}
}

func (s *dirSaver) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return fmt.Errorf("output: invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("output: failed to create %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, base)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("output: failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("output: failed to move %s into place: %w", path, err)
	}
	return nil
}

func (s *dirSaver) Ready() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// --- Network printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkSaver struct {
	address string
	timeout time.Duration
}

// NewNetworkSaver sends each document to a PDF-capable printer over raw TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkSaver(address string) Saver {
	return &networkSaver{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (s *networkSaver) Save(ctx context.Context, name string, data []byte) error {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("output: failed to connect to %s: %w", s.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("output: failed to send %s to %s: %w", name, s.address, err)
	}
	return nil
}

func (s *networkSaver) Ready() bool {
	conn, err := net.DialTimeout("tcp", s.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null saver (no-op, used when nothing should be kept server-side) ---

type nullSaver struct{}

// NewNullSaver creates a saver that discards documents.
func NewNullSaver() Saver {
	return nullSaver{}
}

func (nullSaver) Save(context.Context, string, []byte) error { return nil }

func (nullSaver) Ready() bool { return false }

// NewSaverFromConfig creates the appropriate Saver based on type.
//
//	outputType: "dir", "network", or "none"
//	dir: archive directory for "dir"
//	address: TCP address for "network" (e.g. "192.168.1.100:9100")
func NewSaverFromConfig(outputType, dir, address string) (Saver, error) {
	switch outputType {
	case "dir":
		if dir == "" {
			return nil, fmt.Errorf("output: directory is required for dir output type")
		}
		return NewDirSaver(dir), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("output: address is required for network output type")
		}
		return NewNetworkSaver(address), nil
	case "none", "":
		return NewNullSaver(), nil
	default:
		return nil, fmt.Errorf("output: unknown output type %q (use dir, network, or none)", outputType)
	}
}
