package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"todolist/internal/config"
	"todolist/internal/menu"
	"todolist/internal/render"
	"todolist/internal/task"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "todo failed:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", "todo.yml", "path to YAML config file")
	dataFile := fs.StringP("data-file", "f", "", "task file to load and save")
	autoSave := fs.Bool("auto-save", false, "save tasks when the menu exits")
	noColor := fs.Bool("no-color", false, "render priorities without color")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fs.Changed("data-file") {
		cfg.DataFile = *dataFile
	}
	if fs.Changed("auto-save") {
		cfg.AutoSaveOnExit = *autoSave
	}
	if fs.Changed("no-color") {
		cfg.UI.NoColor = *noColor
	}

	logger := log.New(stderr, "todo: ", 0)
	store := task.NewStore(task.Options{Logger: logger})
	rep, err := store.Load(cfg.DataFile)
	if err != nil {
		// Keep whatever loaded before the read failed.
		logger.Printf("load %s: %v", cfg.DataFile, err)
	}
	if rep.StoppedAt > 0 {
		logger.Printf("loaded %d tasks from %s; lines from %d on were not loaded", rep.Loaded, cfg.DataFile, rep.StoppedAt)
	}

	m := menu.New(store, menu.Options{
		In:       stdin,
		Out:      stdout,
		Err:      stderr,
		DataFile: cfg.DataFile,
		AutoSave: cfg.AutoSaveOnExit,
		Prompt:   isTerminal(stdin),
		Render: render.Options{
			DateFormat:       cfg.DateFormat,
			DescriptionWidth: cfg.UI.DescriptionWidth,
			NoColor:          cfg.UI.NoColor,
		},
	})
	return m.Run()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
