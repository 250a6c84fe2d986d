package documents

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func readStored(t *testing.T, s *FileStore, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	return string(b)
}

func TestFileStore_SaveResolvesCollisions(t *testing.T) {
	s := newStore(t)

	names := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		name, err := s.Save("report.pdf", strings.NewReader(fmt.Sprintf("v%d", i)))
		require.NoError(t, err)
		names = append(names, name)
	}

	assert.Equal(t, []string{"report.pdf", "report_1.pdf", "report_2.pdf"}, names)
	assert.Equal(t, "v0", readStored(t, s, "report.pdf"))
	assert.Equal(t, "v2", readStored(t, s, "report_2.pdf"))
}

func TestFileStore_SaveSkipsExistingSuffixes(t *testing.T) {
	s := newStore(t)
	for _, n := range []string{"a.txt", "a_1.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), n), []byte("x"), 0o644))
	}

	name, err := s.Save("a.txt", strings.NewReader("new"))
	require.NoError(t, err)
	assert.Equal(t, "a_2.txt", name)
}

func TestFileStore_SaveNoExtension(t *testing.T) {
	s := newStore(t)
	_, err := s.Save("README", strings.NewReader("1"))
	require.NoError(t, err)
	name, err := s.Save("README", strings.NewReader("2"))
	require.NoError(t, err)
	assert.Equal(t, "README_1", name)
}

func TestFileStore_ConcurrentSavesGetDistinctNames(t *testing.T) {
	s := newStore(t)
	const n = 16

	var wg sync.WaitGroup
	names := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i], errs[i] = s.Save("same.png", bytes.NewReader([]byte{byte(i)}))
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[names[i]], "duplicate name %s", names[i])
		seen[names[i]] = true
		assert.Equal(t, string([]byte{byte(i)}), readStored(t, s, names[i]))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestFileStore_SaveCleansUpOnWriteError(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("broken.txt", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "broken.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_RemoveToleratesMissing(t *testing.T) {
	s := newStore(t)
	name, err := s.Save("gone.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	require.NoError(t, s.Remove(name))
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	s := newStore(t)
	for _, bad := range []string{"", "..", "../x.txt", `a\b.txt`} {
		_, err := s.Save(bad, strings.NewReader("x"))
		assert.Error(t, err, bad)
		assert.Error(t, s.Remove(bad), bad)
		_, err = s.Path(bad)
		assert.Error(t, err, bad)
	}
}

func TestFileStore_Path(t *testing.T) {
	s := newStore(t)
	name, err := s.Save("here.txt", strings.NewReader("x"))
	require.NoError(t, err)

	p, err := s.Path(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "here.txt"), p)

	_, err = s.Path("missing.txt")
	assert.ErrorIs(t, err, ErrFileMissing)
}
