package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"todolist/internal/config"
	"todolist/internal/ops"
	"todolist/internal/report"
	"todolist/internal/task"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:], os.Stdout)
	case "restore":
		err = cmdRestore(os.Args[2:], os.Stdout)
	case "export":
		err = cmdExport(os.Args[2:], os.Stdout)
	case "drill":
		err = cmdDrill(os.Args[2:], os.Stdout)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func loadConfig(fs *pflag.FlagSet, configPath, dataFile string) (*config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if fs.Changed("data-file") {
		cfg.DataFile = dataFile
	}
	return cfg, nil
}

func cmdBackup(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("backup", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "todo.yml", "path to YAML config file")
	dataFile := fs.StringP("data-file", "f", "", "task file to back up")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(fs, *configPath, *dataFile)
	if err != nil {
		return err
	}

	if *out == "" {
		*out = ops.ArchiveName(cfg.BackupDir, time.Now())
	}
	if _, err := ops.BackupFiles(*out, cfg.DataFile, *configPath); err != nil {
		return err
	}
	fmt.Fprintln(stdout, *out)
	return nil
}

func cmdRestore(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("restore", pflag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	written, err := ops.Restore(*archive, *target)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func cmdExport(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "todo.yml", "path to YAML config file")
	dataFile := fs.StringP("data-file", "f", "", "task file to export")
	format := fs.String("format", "csv", "export format: csv, ics, json or pdf")
	out := fs.StringP("out", "o", "", "output file (default stdout)")
	sortBy := fs.String("sort", "", "sort before exporting: priority or due")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(fs, *configPath, *dataFile)
	if err != nil {
		return err
	}

	store := task.NewStore(task.Options{Logger: log.New(os.Stderr, "export: ", 0)})
	if _, err := store.Load(cfg.DataFile); err != nil {
		return err
	}
	switch *sortBy {
	case "":
	case "priority":
		store.SortByPriority(!*desc)
	case "due":
		store.SortByDueDate(!*desc)
	default:
		return fmt.Errorf("unknown sort %q", *sortBy)
	}

	exp := report.NewExporter(store, cfg.DateFormat)
	if *out == "" {
		return exp.Export(stdout, *format)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := exp.Export(f, *format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// cmdDrill backs up the task and config files, restores the archive into
// a scratch directory and checks every restored file against its source.
func cmdDrill(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "todo.yml", "path to YAML config file")
	dataFile := fs.StringP("data-file", "f", "", "task file to back up")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(fs, *configPath, *dataFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "todo-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "todo-drill-restore-"+ts)

	if _, err := ops.BackupFiles(archive, cfg.DataFile, *configPath); err != nil {
		return err
	}
	if _, err := ops.Restore(archive, restoreDir); err != nil {
		return err
	}

	h := sha256.New()
	for _, src := range []string{cfg.DataFile, *configPath} {
		srcDigest, err := fileDigest(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		restored := filepath.Join(restoreDir, filepath.Base(src))
		restoreDigest, err := fileDigest(restored)
		if err != nil {
			return fmt.Errorf("restored copy of %s: %w", src, err)
		}
		if srcDigest != restoreDigest {
			return fmt.Errorf("digest mismatch after restore: %s=%s %s=%s", src, srcDigest, restored, restoreDigest)
		}
		_, _ = io.WriteString(h, filepath.Base(src)+"\n"+srcDigest+"\n")
	}

	fmt.Fprintln(stdout, "backup:", archive)
	fmt.Fprintln(stdout, "restored:", restoreDir)
	fmt.Fprintln(stdout, "digest:", hex.EncodeToString(h.Sum(nil)))
	return nil
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  todo-ops backup  --data-file tasks.txt --out backups/backup.tar.gz")
	fmt.Println("  todo-ops restore --archive backups/backup.tar.gz --target-dir restored")
	fmt.Println("  todo-ops export  --data-file tasks.txt --format pdf --out tasks.pdf")
	fmt.Println("  todo-ops drill   --data-file tasks.txt --work-dir /tmp")
}
