package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrNoFiles = errors.New("no files to back up")

// ArchiveName returns a timestamped archive path under dir.
func ArchiveName(dir string, now time.Time) string {
	ts := now.UTC().Format("20060102T150405Z")
	return filepath.Join(dir, "todo-"+ts+".tar.gz")
}

// BackupFiles writes the given regular files, flattened to their base
// names, into a gzip-compressed tar at archivePath. Missing files are
// skipped; if none exist ErrNoFiles is returned and no archive is left.
func BackupFiles(archivePath string, files ...string) (int, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if archivePath == "" || archivePath == "." {
		return 0, fmt.Errorf("archive path is required")
	}

	present := make([]string, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return 0, err
		}
		if !info.Mode().IsRegular() {
			return 0, fmt.Errorf("not a regular file: %s", f)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return 0, ErrNoFiles
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return 0, err
	}
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for _, path := range present {
		if err := addFile(tw, path); err != nil {
			return 0, err
		}
	}
	if err := tw.Close(); err != nil {
		return 0, err
	}
	if err := gz.Close(); err != nil {
		return 0, err
	}
	return len(present), out.Close()
}

func addFile(tw *tar.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, src)
	return err
}

// Restore extracts the regular files of an archive into targetDir and
// returns the paths it wrote. Entries that would escape targetDir are
// rejected.
func Restore(archivePath, targetDir string) ([]string, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return nil, fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var written []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}

		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return written, err
		}
		if hdr.Typeflag != tar.TypeReg {
			// Only plain files are ever archived.
			continue
		}
		outPath := filepath.Join(targetDir, rel)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return written, err
		}
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode).Perm())
		if err != nil {
			return written, err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return written, err
		}
		if err := dst.Close(); err != nil {
			return written, err
		}
		written = append(written, outPath)
	}

	return written, nil
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}
