package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

// dirEntries lists names in dir.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAtomicFileWriter_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "www", "cortana", "stats.json")
	w := NewAtomicFileWriter(path, FormatJSON)

	require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "nginx", Value: 1}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "nginx", got.Name)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fileMode, info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())

	assert.Equal(t, []string{"stats.json"}, dirEntries(t, filepath.Dir(path)))
}

func TestAtomicFileWriter_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"a much longer previous document body"}`), 0o600))

	w := NewAtomicFileWriter(path, FormatJSON)
	require.NoError(t, w.Serialize(context.Background(), testDoc{Name: "b"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "b", got.Name)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fileMode, info.Mode().Perm())
}

func TestAtomicFileWriter_CrashBeforeRenameKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	previous := []byte(`{"name":"previous"}`)
	require.NoError(t, os.WriteFile(path, previous, 0o644))

	var tmpSeen string
	w := NewAtomicFileWriter(path, FormatJSON)
	w.beforeRename = func(tmp string) error {
		tmpSeen = tmp
		b, err := os.ReadFile(tmp)
		require.NoError(t, err)
		assert.True(t, json.Valid(b), "temp file must hold the full document")
		return errors.New("simulated crash")
	}

	err := w.Serialize(context.Background(), testDoc{Name: "next"})
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInternal))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, previous, b)

	_, err = os.Stat(tmpSeen)
	assert.True(t, os.IsNotExist(err), "temp file must be removed")
	assert.Equal(t, []string{"stats.json"}, dirEntries(t, dir))
}

func TestAtomicFileWriter_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewAtomicFileWriter(filepath.Join(blocker, "stats.json"), FormatJSON)
	err := w.Serialize(context.Background(), testDoc{})
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInternal))
}

func TestAtomicFileWriter_EncodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	w := NewAtomicFileWriter(path, FormatJSON)

	err := w.Serialize(context.Background(), map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInternal))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAtomicFileWriter_CanceledContextStillPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewAtomicFileWriter(path, FormatJSON).Serialize(ctx, testDoc{Name: "late", Value: 1}))

	var got testDoc
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "late", got.Name)
}

func TestAtomicFileWriter_ConcurrentWritersLeaveValidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := NewAtomicFileWriter(path, FormatJSON)
			assert.NoError(t, w.Serialize(context.Background(), testDoc{Name: "writer", Value: i}))
		}(i)
	}
	wg.Wait()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "writer", got.Name)
	assert.Equal(t, []string{"stats.json"}, dirEntries(t, dir))
}
