package resolver

import (
	"context"
	"errors"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

// DefaultProbeTimeout bounds the existence check when settings don't set one.
const DefaultProbeTimeout = 2 * time.Second

// Prober checks that a drive or mount point answers. Implementations must
// return within a bounded time and must not retry.
type Prober interface {
	Probe(ctx context.Context, path string) error
}

// StatProber issues a single os.Stat raced against Timeout. A disconnected
// SMB share can block stat for tens of seconds; the caller gets
// DriveUnreachable when the timer fires and the stat goroutine is abandoned.
type StatProber struct {
	Timeout time.Duration

	stat func(string) (os.FileInfo, error)
}

var errNotDirectory = errors.New("not a directory")

func (p StatProber) Probe(ctx context.Context, path string) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	stat := p.stat
	if stat == nil {
		stat = os.Stat
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		info os.FileInfo
		err  error
	}
	// Buffered so an abandoned stat can still complete and exit.
	done := make(chan result, 1)
	go func() {
		info, err := stat(path)
		done <- result{info, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return &kerrors.DriveUnreachableError{Path: path, Cause: r.err}
		}
		if !r.info.IsDir() {
			return &kerrors.DriveUnreachableError{Path: path, Cause: errNotDirectory}
		}
		return nil
	case <-ctx.Done():
		return &kerrors.DriveUnreachableError{Path: path, Cause: ctx.Err()}
	}
}
