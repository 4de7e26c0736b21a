package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrDirectory is returned when the data directory cannot be listed.
	ErrDirectory = errors.New("could not read data directory")
	// ErrRead is returned when a listed file cannot be read. It aborts a walk.
	ErrRead = errors.New("could not read session file")
)

// DecodeError means one file did not match the session schema. Walks skip
// such files and keep going.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Archive is a flat directory of session files, one session per file.
type Archive struct {
	dir   string
	paths []string
}

// OpenArchive lists dir. Subdirectories are ignored; everything else is
// treated as a session file. Paths are kept in lexicographic order, which is
// what puts the sessions in ascending time order.
func OpenArchive(dir string) (*Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDirectory, dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	log.Debugf("archive %s: %d files", dir, len(paths))
	return &Archive{dir: dir, paths: paths}, nil
}

func (a *Archive) Dir() string {
	return a.dir
}

func (a *Archive) Paths() []string {
	return a.paths
}

// Walk decodes every file in order. Decoded records go to onRecord, decode
// failures to onSkip. Read failures and errors from onRecord stop the walk.
func (a *Archive) Walk(onRecord func(Record) error, onSkip func(*DecodeError)) error {
	for _, path := range a.paths {
		rec, err := ReadFile(path)
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				log.WithField("file", path).Debugf("skipping: %s", decodeErr.Err)
				if onSkip != nil {
					onSkip(decodeErr)
				}
				continue
			}
			return err
		}
		if err := onRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile reads and decodes a single session file.
func ReadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return Record{}, fmt.Errorf("%w %q: %w", ErrRead, path, err)
		}
		return Record{}, &DecodeError{Path: path, Err: err}
	}
	rec.Path = path
	return rec, nil
}
