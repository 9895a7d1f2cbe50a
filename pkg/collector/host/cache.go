package host

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// maxSampleSize bounds how much of the cache file is read back.
const maxSampleSize = 4 << 10

// CPUSample is a raw aggregate tick reading. It is persisted between
// invocations as {"idle": n, "total": n}.
type CPUSample struct {
	Idle  uint64 `json:"idle"`
	Total uint64 `json:"total"`
}

// SampleStore owns the persisted CPU sample. Swap is the only accessor: it
// returns the previous sample and replaces it with the current one while
// holding both an in-process mutex and an exclusive flock on the file, so
// overlapping invocations cannot interleave their read and write.
type SampleStore struct {
	path string
	mu   sync.Mutex
}

// NewSampleStore returns a store backed by the file at path.
func NewSampleStore(path string) *SampleStore {
	return &SampleStore{path: path}
}

// Path returns the backing file location.
func (s *SampleStore) Path() string {
	return s.path
}

// Swap persists cur and returns the sample it replaced. ok is false when no
// usable previous sample existed (absent, empty, corrupt, missing keys or a
// zero total); that is a cold start, not an error. err reports a failure to
// open, lock or write the file. When the previous sample was read before
// the failure, prev and ok are still valid.
func (s *SampleStore) Swap(cur CPUSample) (prev CPUSample, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return CPUSample{}, false, fmt.Errorf("failed to create cpu cache directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return CPUSample{}, false, fmt.Errorf("failed to open cpu cache %q: %w", s.path, err)
	}
	defer f.Close()

	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return CPUSample{}, false, fmt.Errorf("failed to lock cpu cache %q: %w", s.path, err)
	}
	defer func() { _ = unix.Flock(fd, unix.LOCK_UN) }()

	prev, ok = decodeSample(f)

	if err := writeSample(f, cur); err != nil {
		return prev, ok, fmt.Errorf("failed to write cpu cache %q: %w", s.path, err)
	}
	return prev, ok, nil
}

func decodeSample(r io.Reader) (CPUSample, bool) {
	b, err := io.ReadAll(io.LimitReader(r, maxSampleSize))
	if err != nil || len(b) == 0 {
		return CPUSample{}, false
	}

	var raw struct {
		Idle  *uint64 `json:"idle"`
		Total *uint64 `json:"total"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return CPUSample{}, false
	}
	if raw.Idle == nil || raw.Total == nil || *raw.Total == 0 {
		return CPUSample{}, false
	}
	return CPUSample{Idle: *raw.Idle, Total: *raw.Total}, true
}

func writeSample(f *os.File, s CPUSample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(b, 0); err != nil {
		return err
	}
	return f.Sync()
}
