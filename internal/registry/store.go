package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/lucid/internal/configs"
	kerrors "github.com/PolarWolf314/lucid/internal/errors"
	"github.com/PolarWolf314/lucid/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultLockTimeout = 10 * time.Second
	DefaultStaleAfter  = 2 * time.Minute
)

// Options tune a Store. Zero values use the defaults.
type Options struct {
	LockTimeout time.Duration
	StaleAfter  time.Duration
	// Now stamps CreatedAt. Defaults to time.Now.
	Now func() time.Time
}

// Store is the project registry backed by one TOML document. A Store holds
// no state between calls; every read goes to disk.
type Store struct {
	path        string
	lockTimeout time.Duration
	staleAfter  time.Duration
	now         func() time.Time
}

// Open returns a Store for the document at path. The document need not
// exist yet.
func Open(path string, opts Options) *Store {
	s := &Store{
		path:        path,
		lockTimeout: opts.LockTimeout,
		staleAfter:  opts.StaleAfter,
		now:         opts.Now,
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = DefaultLockTimeout
	}
	if s.staleAfter <= 0 {
		s.staleAfter = DefaultStaleAfter
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Path returns the registry document path.
func (s *Store) Path() string {
	return s.path
}

// LockPath returns the path of the writer lock file.
func (s *Store) LockPath() string {
	return s.path + ".lock"
}

func (s *Store) load() (*document, error) {
	doc := &document{Version: documentVersion}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	if _, err := toml.Decode(string(data), doc); err != nil {
		return nil, fmt.Errorf("registry %s is corrupt: %w", s.path, err)
	}
	return doc, nil
}

// update runs fn against the current document while holding the writer
// lock. fn reports whether it changed anything; unchanged documents are not
// rewritten.
func (s *Store) update(ctx context.Context, fn func(doc *document) (bool, error)) (err error) {
	lock, err := acquireLock(ctx, s.LockPath(), s.lockTimeout, s.staleAfter)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.release(); rerr != nil && err == nil {
			err = fmt.Errorf("releasing registry lock: %w", rerr)
		}
	}()

	// Re-read under the lock; another machine may have written since.
	doc, err := s.load()
	if err != nil {
		return err
	}

	changed, err := fn(doc)
	if err != nil || !changed {
		return err
	}

	doc.Version = documentVersion
	return configs.SaveTOML(s.path, doc)
}

func (d *document) find(code string) int {
	key := utils.CodeKey(code)
	for i := range d.Projects {
		if utils.CodeKey(d.Projects[i].Code) == key {
			return i
		}
	}
	return -1
}

func (d *document) issued(code string) bool {
	key := utils.CodeKey(code)
	for _, c := range d.Issued {
		if utils.CodeKey(c) == key {
			return true
		}
	}
	return false
}

// CreateProject adds a new record. The duplicate check and the insert
// happen under one lock, so of two machines racing on the same code
// exactly one succeeds.
func (s *Store) CreateProject(ctx context.Context, code, name string) (ProjectRecord, error) {
	if !utils.IsValidProjectCode(code) {
		return ProjectRecord{}, fmt.Errorf("%w: %q", kerrors.ErrInvalidProjectCode, code)
	}
	if name == "" {
		name = code
	}

	var created ProjectRecord
	err := s.update(ctx, func(doc *document) (bool, error) {
		if doc.issued(code) {
			return false, fmt.Errorf("%w: %s", kerrors.ErrDuplicateCode, code)
		}

		doc.NextSeq++
		created = ProjectRecord{
			Code:      code,
			UUID:      uuid.NewString(),
			Name:      name,
			CreatedAt: s.now().UTC().Truncate(time.Microsecond),
			Seq:       doc.NextSeq,
			Overrides: map[string]any{},
		}
		doc.Issued = append(doc.Issued, code)
		doc.Projects = append(doc.Projects, created)
		return true, nil
	})
	if err != nil {
		return ProjectRecord{}, err
	}
	return created.Clone(), nil
}

// GetProject returns the record for code. Lookups ignore case.
func (s *Store) GetProject(code string) (ProjectRecord, error) {
	doc, err := s.load()
	if err != nil {
		return ProjectRecord{}, err
	}
	i := doc.find(code)
	if i < 0 {
		return ProjectRecord{}, fmt.Errorf("%w: %s", kerrors.ErrNotFound, code)
	}
	return doc.Projects[i].Clone(), nil
}

// ListProjects returns live records by creation time, oldest first.
func (s *Store) ListProjects() ([]ProjectRecord, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]ProjectRecord, len(doc.Projects))
	for i, r := range doc.Projects {
		out[i] = r.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

// IssuedCodes returns every code ever created, including deleted ones.
func (s *Store) IssuedCodes() ([]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(doc.Issued))
	copy(out, doc.Issued)
	return out, nil
}

// SetOverride sets key on the project, replacing any previous value.
func (s *Store) SetOverride(ctx context.Context, code, key string, value any) error {
	if key == "" {
		return errors.New("override key must not be empty")
	}
	return s.update(ctx, func(doc *document) (bool, error) {
		i := doc.find(code)
		if i < 0 {
			return false, fmt.Errorf("%w: %s", kerrors.ErrNotFound, code)
		}
		if doc.Projects[i].Overrides == nil {
			doc.Projects[i].Overrides = make(map[string]any)
		}
		doc.Projects[i].Overrides[key] = cloneValue(value)
		return true, nil
	})
}

// RemoveOverride clears key on the project and reports whether it was set.
// Clearing a key that was never set is not an error.
func (s *Store) RemoveOverride(ctx context.Context, code, key string) (bool, error) {
	var removed bool
	err := s.update(ctx, func(doc *document) (bool, error) {
		i := doc.find(code)
		if i < 0 {
			return false, fmt.Errorf("%w: %s", kerrors.ErrNotFound, code)
		}
		if _, ok := doc.Projects[i].Overrides[key]; !ok {
			return false, nil
		}
		delete(doc.Projects[i].Overrides, key)
		removed = true
		return true, nil
	})
	return removed, err
}

// Rename changes the display name. The code stays.
func (s *Store) Rename(ctx context.Context, code, name string) error {
	if name == "" {
		return errors.New("display name must not be empty")
	}
	return s.update(ctx, func(doc *document) (bool, error) {
		i := doc.find(code)
		if i < 0 {
			return false, fmt.Errorf("%w: %s", kerrors.ErrNotFound, code)
		}
		if doc.Projects[i].Name == name {
			return false, nil
		}
		doc.Projects[i].Name = name
		return true, nil
	})
}

// DeleteProject removes the record and returns it. Its code stays in the
// tombstone set and can never be created again. Folders on disk are left
// alone.
func (s *Store) DeleteProject(ctx context.Context, code string) (ProjectRecord, error) {
	var removed ProjectRecord
	err := s.update(ctx, func(doc *document) (bool, error) {
		i := doc.find(code)
		if i < 0 {
			return false, fmt.Errorf("%w: %s", kerrors.ErrNotFound, code)
		}
		removed = doc.Projects[i]
		doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
		if !doc.issued(removed.Code) {
			doc.Issued = append(doc.Issued, removed.Code)
		}
		return true, nil
	})
	if err != nil {
		return ProjectRecord{}, err
	}
	return removed.Clone(), nil
}
