// wld-cli inspects WLD scene documents from EverQuest-era clients.
//
// Three modes of operation:
//
// Stats (--stats): prints a fragment count per type code and exits.
//
// Export (--export DIR): dumps every fragment body into DIR, one file
// per fragment, optionally compressed (--compress zstd|lz4|brotli).
//
// Explorer (default): an interactive two-pane browser over the
// fragment table, with a type/name filter and per-fragment detail.
//
// The FILE argument is either a bare .wld document or an .s3d archive;
// archives are opened through their first .wld member unless --entry
// names one explicitly.
package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/logicossoftware/go-wld"
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
		showStats    bool
		exportDir    string
		compressName string
		entryName    string
	)

	flagSet := pflag.NewFlagSet("wld-cli", pflag.ContinueOnError)
	flagSet.BoolVarP(&showStats, "stats", "s", false, "print fragment counts per type and exit")
	flagSet.StringVar(&exportDir, "export", "", "dump every fragment body into this directory and exit")
	flagSet.StringVar(&compressName, "compress", "none", "compression for exported dumps: none, zstd, lz4, or brotli")
	flagSet.StringVar(&entryName, "entry", "", "archive member to open (default: first .wld entry)")
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

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return fmt.Errorf("expected exactly one FILE argument, got %d", len(args))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	doc, title, err := loadDocument(args[0], entryName, logger)
	if err != nil {
		return err
	}

	switch {
	case showStats:
		return writeStats(os.Stdout, doc)

	case exportDir != "":
		comp, err := parseCompression(compressName)
		if err != nil {
			return err
		}
		n, err := exportFragments(doc, exportDir, comp)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d fragments to %s\n", n, exportDir)
		return nil

	default:
		program := tea.NewProgram(newExplorer(doc, title), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `wld-cli inspects WLD scene documents.

FILE is a .wld document or an .s3d archive. Archives are opened
through their first .wld member; --entry picks a different one.

Without --stats or --export, opens an interactive explorer:
j/k move through the fragment list, Tab switches panes, / filters
by type or fragment name, q quits.

Usage:
  wld-cli [flags] FILE

Examples:
  # Fragment counts for a zone
  wld-cli --stats gfaydark.s3d

  # Dump every fragment body, zstd-compressed
  wld-cli --export dump --compress zstd gfaydark.s3d

  # Browse the object placements file inside an archive
  wld-cli --entry objects.wld gfaydark_obj.s3d

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// isArchive sniffs the PFS magic word so .s3d content is recognized
// regardless of file extension.
func isArchive(data []byte) bool {
	return len(data) >= 8 && binary.LittleEndian.Uint32(data[4:8]) == archive.Magic
}

// loadDocument reads path and parses a document out of it. Plain files
// parse directly; archives are searched for a .wld member. The returned
// title is the name shown in the explorer header: the base file name,
// or the member name for archives.
func loadDocument(path, entry string, logger *slog.Logger) (*wld.Document, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	if !isArchive(data) {
		doc, err := wld.Parse(data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return doc, filepath.Base(path), nil
	}

	a, err := archive.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	name := entry
	if name == "" {
		candidates := wldMembers(a)
		if len(candidates) == 0 {
			return nil, "", fmt.Errorf("%s: archive has no .wld member", path)
		}
		if len(candidates) > 1 {
			logger.Warn("archive holds several wld members, using the first",
				"chosen", candidates[0], "count", len(candidates))
		}
		name = candidates[0]
	}

	member, err := a.File(name)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	doc, err := wld.Parse(member)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %s: %w", path, name, err)
	}
	return doc, name, nil
}

func wldMembers(a *archive.Archive) []string {
	var out []string
	for _, name := range a.Names() {
		if strings.HasSuffix(strings.ToLower(name), ".wld") {
			out = append(out, name)
		}
	}
	return out
}

// writeStats prints the per-type fragment counts sorted by type code.
func writeStats(w io.Writer, doc *wld.Document) error {
	counts := make(map[uint32]int)
	for _, f := range doc.Fragments {
		counts[f.TypeCode()]++
	}
	codes := make([]uint32, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "CODE\tTYPE\tCOUNT\n")
	for _, code := range codes {
		name := wld.TypeName(code)
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(tw, "0x%02X\t%s\t%d\n", code, name, counts[code])
	}
	fmt.Fprintf(tw, "\ttotal\t%d\n", len(doc.Fragments))
	return tw.Flush()
}
