// grfkit is a CLI utility for reading Ragnarok Online GRF archives and the
// GAT/SPR/ACT asset formats they contain.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/haneul-ro/grfkit/internal/config"
	"github.com/haneul-ro/grfkit/internal/logger"
	"github.com/haneul-ro/grfkit/pkg/grf"
)

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		cmdInfo(rest)
	case "list", "ls":
		cmdList(rest)
	case "extract", "x":
		cmdExtract(cfg, rest)
	case "cat":
		cmdCat(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`grfkit - Ragnarok Online GRF archive utility

Usage:
  grfkit [--config path] [--grf path] [--out dir] [--debug] <command> [options]

Commands:
  info <file.grf>                    Show archive header and entry summary
  list <file.grf> [pattern]          List entries (optional glob pattern)
  extract <file.grf> <entry> [dir]   Extract one entry under dir/data/<entry>
  cat <file.grf> <entry>             Dump a decoded entry's structure to stdout

Examples:
  grfkit info data.grf
  grfkit list data.grf "*.spr"
  grfkit extract data.grf sprite/npc/npc.spr ./output
  grfkit cat data.grf texture/map.gat`)
}

func openOrExit(path string) *grf.Archive {
	archive, err := grf.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return archive
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: grfkit info <file.grf>")
		os.Exit(1)
	}

	archive := openOrExit(args[0])
	defer archive.Close()

	extCount := make(map[string]int)
	total := 0
	for name := range archive.Files() {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == "" {
			ext = "(no ext)"
		}
		extCount[ext]++
		total++
	}

	fmt.Printf("Archive:          %s\n", args[0])
	fmt.Printf("Version:          0x%x\n", archive.Version())
	fmt.Printf("Allow encryption: %v\n", archive.AllowEncryption())
	fmt.Printf("Declared entries: %d\n", archive.Len())
	fmt.Printf("Indexed entries:  %d\n", total)
	fmt.Println()
	fmt.Println("Entries by type:")

	type extStat struct {
		ext   string
		count int
	}
	var stats []extStat
	for ext, count := range extCount {
		stats = append(stats, extStat{ext, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})
	for _, s := range stats {
		fmt.Printf("  %-10s %d\n", s.ext, s.count)
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N entries (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: grfkit list <file.grf> [pattern]")
		os.Exit(1)
	}

	archive := openOrExit(fs.Arg(0))
	defer archive.Close()

	var names []string
	for name := range archive.Files() {
		names = append(names, name)
	}
	sort.Strings(names)

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToLower(fs.Arg(1))
	}

	count := 0
	for _, name := range names {
		if pattern != "" {
			matched, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(name)))
			if !matched && !strings.Contains(strings.ToLower(name), pattern) {
				continue
			}
		}
		fmt.Println(name)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	if pattern != "" {
		fmt.Fprintf(os.Stderr, "\n(%d entries matched)\n", count)
	}
}

func cmdExtract(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: grfkit extract <file.grf> <entry> [output_dir]")
		os.Exit(1)
	}

	grfPath := fs.Arg(0)
	entry := fs.Arg(1)
	outputDir := cfg.Data.ExtractDir
	if fs.NArg() > 2 {
		outputDir = fs.Arg(2)
	}

	archive := openOrExit(grfPath)
	defer archive.Close()

	if strings.Contains(entry, "*") {
		extractPattern(archive, entry, outputDir)
		return
	}

	if err := archive.Extract(entry, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", entry, err)
		os.Exit(1)
	}
	fmt.Printf("Extracted: %s\n", filepath.Join(outputDir, "data", filepath.FromSlash(entry)))
}

func extractPattern(archive *grf.Archive, pattern, outputDir string) {
	pattern = strings.ToLower(pattern)

	extracted := 0
	for name := range archive.Files() {
		matched, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(name)))
		if !matched {
			continue
		}
		if err := archive.Extract(name, outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", name, err)
			continue
		}
		fmt.Printf("Extracted: %s\n", filepath.Join(outputDir, "data", filepath.FromSlash(name)))
		extracted++
	}
	fmt.Fprintf(os.Stderr, "\nExtracted %d entries\n", extracted)
}

func cmdCat(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: grfkit cat <file.grf> <entry>")
		os.Exit(1)
	}

	archive := openOrExit(args[0])
	defer archive.Close()

	p, err := archive.Open(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch p.Kind {
	case grf.KindGAT:
		fmt.Printf("GAT %dx%d tiles\n", p.GAT.Width, p.GAT.Height)
	case grf.KindSPR:
		fmt.Printf("SPR version 0x%03x, %d images\n", p.SPR.Version, p.SPR.Len())
	case grf.KindACT:
		fmt.Printf("ACT version 0x%03x, %d animations, %d triggers\n",
			p.ACT.Version, len(p.ACT.Animations), len(p.ACT.Triggers))
		for i := range p.ACT.Animations {
			fmt.Printf("  [%d] %s (%d frames)\n", i, p.ACT.AnimationName(i), len(p.ACT.Animations[i].Frames))
		}
	default:
		fmt.Printf("raw entry, %d bytes\n", len(p.Data))
	}
}
