package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/google/uuid"
)

const lockPollInterval = 20 * time.Millisecond

// fileLock is an exclusive lock held by creating a file with O_EXCL. That
// is atomic on local disks and on SMB and NFS shares alike, so machines
// sharing one registry serialize through it.
type fileLock struct {
	path  string
	token string
}

// acquireLock waits up to timeout for the lock at path. A lock file older
// than staleAfter is assumed to belong to a crashed writer and is broken;
// staleAfter must be far longer than any single write.
func acquireLock(ctx context.Context, path string, timeout, staleAfter time.Duration) (*fileLock, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(timeout)

	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%s\n%s\n", token, time.Now().UTC().Format(time.RFC3339Nano))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("writing lock file: %w", errors.Join(werr, cerr))
			}
			return &fileLock{path: path, token: token}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating lock file: %w", err)
		}

		if info, serr := os.Stat(path); serr == nil && time.Since(info.ModTime()) > staleAfter {
			breakStaleLock(path, staleAfter)
			continue
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s held for more than %s", kerrors.ErrRegistryLocked, path, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}

// breakStaleLock moves the lock at path aside before deleting it, so two
// waiters breaking the same stale lock cannot delete a fresh lock taken in
// between. If the file moved aside turns out to be fresh it is put back.
func breakStaleLock(path string, staleAfter time.Duration) {
	aside := path + ".stale-" + uuid.NewString()
	if err := os.Rename(path, aside); err != nil {
		// Another waiter moved it first.
		return
	}
	info, err := os.Stat(aside)
	if err == nil && time.Since(info.ModTime()) <= staleAfter {
		// Link fails if a newer lock already took path; the owner then
		// finds no file on release, which it tolerates.
		_ = os.Link(aside, path)
	}
	_ = os.Remove(aside)
}

// release removes the lock file if it is still ours.
func (l *fileLock) release() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if owner, _, _ := strings.Cut(string(data), "\n"); owner != l.token {
		return nil
	}
	return os.Remove(l.path)
}
