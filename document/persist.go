package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	units "github.com/docker/go-units"
	"github.com/opencontainers/go-digest"
	"github.com/projecteru2/core/log"

	"github.com/projecteru2/uuidkey/lock"
	"github.com/projecteru2/uuidkey/lock/flock"
)

const defaultMode fs.FileMode = 0o644

// Options tunes Persist.
type Options struct {
	// Lock holds an flock on the output's directory for the whole write, so
	// concurrent runs replace the file one after another.
	Lock bool
}

// Result describes a written document.
type Result struct {
	Path   string
	Size   int64
	Digest digest.Digest
}

// Persist replaces path with the encoded document. The bytes are written to a
// temp file beside the target and renamed over it, so readers never see a
// partial document. A symlinked path is written through and an existing
// file keeps its mode. Nothing is retried.
func Persist(ctx context.Context, path string, doc *Document, opts Options) (*Result, error) {
	data, err := doc.Marshal()
	if err != nil {
		return nil, err
	}

	target, err := resolveTarget(path)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	write := func() error { return writeFile(target, data) }
	if opts.Lock {
		err = lock.WithLock(ctx, flock.New(filepath.Dir(target)), write)
	} else {
		err = write()
	}
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	res := &Result{Path: path, Size: int64(len(data)), Digest: digest.FromBytes(data)}
	log.WithFunc("document.Persist").Infof(ctx, "wrote %s: %d symbols, %s, %s",
		path, len(doc.Symbols), units.HumanSize(float64(res.Size)), res.Digest)
	return res, nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet is
// its own target.
func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	// Dangling link: write where it points.
	if dst, lerr := os.Readlink(path); lerr == nil {
		if !filepath.IsAbs(dst) {
			dst = filepath.Join(filepath.Dir(path), dst)
		}
		return dst, nil
	}
	return path, nil
}

func writeFile(target string, data []byte) (err error) {
	mode := defaultMode
	if fi, serr := os.Stat(target); serr == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = f.Chmod(mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
