// eq-archive lists, extracts, and builds PFS archives, the .s3d and
// .eqg containers EverQuest-era clients load zone assets from.
//
// Without a mode flag it prints the member table. With -x it unpacks
// every member into a directory; with -c it packs a directory's files
// into a fresh archive.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/logicossoftware/go-wld/archive"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		extract bool
		create  bool
	)

	flagSet := pflag.NewFlagSet("eq-archive", pflag.ContinueOnError)
	flagSet.BoolVarP(&extract, "extract", "x", false, "extract every member of ARCHIVE into DIR")
	flagSet.BoolVarP(&create, "create", "c", false, "build ARCHIVE from the files in DIR")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	args := flagSet.Args()

	switch {
	case extract && create:
		return fmt.Errorf("--extract and --create are mutually exclusive")

	case extract:
		if len(args) < 1 || len(args) > 2 {
			printHelp(flagSet)
			return fmt.Errorf("extract wants ARCHIVE [DIR], got %d arguments", len(args))
		}
		dest := "."
		if len(args) == 2 {
			dest = args[1]
		}
		n, err := extractArchive(args[0], dest, logger)
		if err != nil {
			return err
		}
		fmt.Printf("extracted %d files to %s\n", n, dest)
		return nil

	case create:
		if len(args) != 2 {
			printHelp(flagSet)
			return fmt.Errorf("create wants ARCHIVE DIR, got %d arguments", len(args))
		}
		n, err := createArchive(args[0], args[1], logger)
		if err != nil {
			return err
		}
		fmt.Printf("packed %d files into %s\n", n, args[0])
		return nil

	default:
		if len(args) != 1 {
			printHelp(flagSet)
			return fmt.Errorf("expected exactly one ARCHIVE argument, got %d", len(args))
		}
		return listArchive(os.Stdout, args[0])
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `eq-archive lists, extracts, and builds PFS archives.

Usage:
  eq-archive ARCHIVE              list members
  eq-archive -x ARCHIVE [DIR]     extract members into DIR (default .)
  eq-archive -c ARCHIVE DIR       pack the files in DIR into ARCHIVE

Examples:
  eq-archive gfaydark.s3d
  eq-archive -x gfaydark.s3d gfaydark/
  eq-archive -c rebuilt.s3d gfaydark/

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// listArchive prints the member table: name, stored size, and the
// directory CRC of the name.
func listArchive(w io.Writer, path string) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tSIZE\tCRC\n")
	for _, f := range a.Files() {
		fmt.Fprintf(tw, "%s\t%d\t0x%08X\n", f.Name, len(f.Data), archive.NameCRC(f.Name))
	}
	fmt.Fprintf(tw, "\t\t%d files\n", a.Len())
	return tw.Flush()
}

// extractArchive writes every member of the archive at src into dest,
// creating dest if needed. Members whose stored names would escape the
// destination are skipped with a warning; well-formed archives store
// bare file names only.
func extractArchive(src, dest string, logger *slog.Logger) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory, want an archive file", src)
	}

	a, err := archive.Open(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, err
	}

	n := 0
	for _, f := range a.Files() {
		if !safeMemberName(f.Name) {
			logger.Warn("skipping member with unsafe name", "name", f.Name)
			continue
		}
		if err := os.WriteFile(filepath.Join(dest, f.Name), f.Data, 0o644); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// safeMemberName rejects stored names that would write outside the
// destination directory.
func safeMemberName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// createArchive packs the regular files under dir into a new archive
// at dst. Subdirectories are skipped with a warning; the PFS directory
// is flat.
func createArchive(dst, dir string, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	a := archive.New()
	for _, e := range entries {
		if e.IsDir() {
			logger.Warn("skipping directory", "name", e.Name())
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		a.Add(e.Name(), data)
	}
	if a.Len() == 0 {
		return 0, fmt.Errorf("%s holds no files", dir)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	if err := a.Encode(out); err != nil {
		out.Close()
		return 0, err
	}
	return a.Len(), out.Close()
}
