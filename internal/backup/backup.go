// Package backup archives a SQLite catalog database, and optionally its
// config file, as tar.gz and restores such archives.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HerbHall/stinger/internal/store"
)

// ErrExists is returned by Restore when a target file exists and force is off.
var ErrExists = errors.New("file already exists")

// maxEntryBytes bounds a single restored file.
const maxEntryBytes = 1 << 30

// Backup writes a tar.gz archive holding the database at dbPath and, when
// configPath names an existing file, the config file. The WAL is
// checkpointed first so the copied file is self-contained.
func Backup(ctx context.Context, dbPath, configPath, outputPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database file not found: %w", err)
	}
	if err := checkpointWAL(ctx, dbPath); err != nil {
		return fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gw)

	if err := addFileToTar(tw, dbPath, filepath.Base(dbPath)); err != nil {
		return fmt.Errorf("adding database to archive: %w", err)
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return outFile.Close()
}

// Restore extracts the regular files of archivePath into dir, which is
// created if missing. Entry names are reduced to their base name. Existing
// files are only replaced when force is set.
func Restore(ctx context.Context, archivePath, dir string, force bool) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	var restored []string
	tr := tar.NewReader(gr)
	for {
		if err := ctx.Err(); err != nil {
			return restored, err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return restored, nil
		}
		if err != nil {
			return restored, fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Base(filepath.Clean(hdr.Name))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			continue
		}
		target := filepath.Join(dir, name)
		if err := extractFile(tr, target, force); err != nil {
			return restored, err
		}
		restored = append(restored, target)
	}
}

func extractFile(r io.Reader, target string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(target, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w (use --force to overwrite)", target, ErrExists)
		}
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(r, maxEntryBytes+1))
	if err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if n > maxEntryBytes {
		return fmt.Errorf("writing %s: entry exceeds %d bytes", target, maxEntryBytes)
	}
	return out.Close()
}

// checkpointWAL flushes the write-ahead log into the main database file.
func checkpointWAL(ctx context.Context, dbPath string) error {
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.DB().ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
