/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/mikeb26/pingpong-tdbot/export"
	"github.com/mikeb26/pingpong-tdbot/internal"
	"github.com/mikeb26/pingpong-tdbot/roster"
	"github.com/mikeb26/pingpong-tdbot/store"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":          handleHelp,
	"list":          handleList,
	"delete":        handleDelete,
	"roster":        handleRoster,
	"draw":          handleDraw,
	"win":           handleWin,
	"round2":        stageStarter("round2", (*bracket.Tournament).StartRound2),
	"quarterfinals": stageStarter("quarterfinals", (*bracket.Tournament).StartQuarterfinals),
	"semifinals":    stageStarter("semifinals", (*bracket.Tournament).StartSemifinals),
	"finals":        stageStarter("finals", (*bracket.Tournament).StartFinals),
	"third":         handleThird,
	"undo":          handleUndo,
	"bracket":       handleBracket,
	"standings":     handleStandings,
	"player":        handlePlayer,
	"export":        handleExport,
}

var cfg *internal.Config

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	var err error
	cfg, err = internal.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	handler(ctx, os.Args[2:])
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// newFlagSet returns a flag set carrying the --tournament flag every
// command shares.
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	tname := fs.String("tournament", internal.DefaultTournament,
		"Tournament name")
	return fs, tname
}

func openStore(ctx context.Context) *store.Store {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Error opening tournament store: %v", err)
	}
	return st
}

func loadTournament(ctx context.Context, name string) (*store.Store,
	*bracket.Tournament) {

	st := openStore(ctx)
	t, err := st.LoadOrNew(name)
	if err != nil {
		log.Fatalf("Error loading tournament %q: %v", name, err)
	}
	return st, t
}

func saveTournament(st *store.Store, t *bracket.Tournament) {
	if err := st.Save(t); err != nil {
		log.Fatalf("Error saving tournament %q: %v", t.Name, err)
	}
}

// mutate loads a tournament, applies fn and saves the result. On failure
// nothing is saved.
func mutate(ctx context.Context, name string, what string,
	fn func(t *bracket.Tournament) error) *bracket.Tournament {

	st, t := loadTournament(ctx, name)
	if err := fn(t); err != nil {
		if errors.Is(err, bracket.ErrNotReady) {
			fmt.Fprintf(os.Stderr, "Not ready: %v\n", err)
			os.Exit(1)
		}
		log.Fatalf("Unable to %v: %v", what, err)
	}
	saveTournament(st, t)

	return t
}

func handleList(ctx context.Context, args []string) {
	ids, err := openStore(ctx).List()
	if err != nil {
		log.Fatalf("Error listing tournaments: %v", err)
	}
	if len(ids) == 0 {
		fmt.Println("No saved tournaments.")
		return
	}
	for _, id := range ids {
		fmt.Printf("  - %v\n", id)
	}
}

func handleDelete(ctx context.Context, args []string) {
	fs, tname := newFlagSet("delete")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	st := openStore(ctx)
	if _, err := st.Load(*tname); err != nil {
		log.Fatalf("Error deleting tournament: %v", err)
	}
	if err := st.Delete(*tname); err != nil {
		log.Fatalf("Error deleting tournament: %v", err)
	}
	fmt.Printf("Deleted tournament %q\n", *tname)
}

func handleRoster(ctx context.Context, args []string) {
	fs, tname := newFlagSet("roster")
	text := fs.String("text", "", "Comma or newline separated player names")
	file := fs.String("file", "", "File to read the roster from")
	url := fs.String("url", "", "URL to fetch the roster from")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var names []string
	var err error
	switch {
	case *text != "":
		names, err = roster.Parse(*text)
	case *file != "":
		names, err = readRosterFile(*file)
	case *url != "":
		client := internal.NewCachedHttpClient(webCache(), 15*time.Minute)
		names, err = roster.Fetch(ctx, client, *url)
	default:
		fmt.Fprintln(os.Stderr, "Please provide one of --text, --file or --url.")
		fs.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error reading roster: %v", err)
	}

	t := mutate(ctx, *tname, "set roster", func(t *bracket.Tournament) error {
		return t.SetRoster(names)
	})
	fmt.Printf("%d players entered for %q:\n", len(t.Roster()), t.Name)
	for _, n := range t.Roster() {
		fmt.Printf("  - %v\n", n)
	}
	fmt.Printf("\nRun '%s draw --tournament %q' to draw Round 1\n", os.Args[0],
		t.Name)
}

func readRosterFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return roster.FromXLSX(f)
	case ".html", ".htm":
		return roster.FromHTML(f)
	case ".csv":
		rows, err := export.ReadRosterCSV(f)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, r := range rows {
			names = append(names, r.Name)
		}
		return roster.Parse(strings.Join(names, "\n"))
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return roster.Parse(string(data))
}

// webCache keeps fetched roster pages next to the tournament store when it
// lives on disk.
func webCache() httpcache.Cache {
	if cfg.Store != internal.StoreDisk {
		return httpcache.NewMemoryCache()
	}
	dir := filepath.Join(cfg.Dir, "webcache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("pptd.webcache: falling back to memory cache: %v", err)
		return httpcache.NewMemoryCache()
	}
	return diskcache.New(dir)
}

func handleDraw(ctx context.Context, args []string) {
	fs, tname := newFlagSet("draw")
	seed := fs.Uint64("seed", 0, "Random seed for a reproducible draw (0 for random)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	t := mutate(ctx, *tname, "draw round 1", func(t *bracket.Tournament) error {
		return t.Draw(bracket.NewRandomShuffler(*seed))
	})
	fmt.Print(bracket.BuildBracketOutput(t))
}

func handleWin(ctx context.Context, args []string) {
	fs, tname := newFlagSet("win")
	stageName := fs.String("stage", "", "Stage: r1, r2, qf, sf or final")
	match := fs.Int("match", 0, "Match number within the stage (1-based)")
	player := fs.String("player", "", "Winning player")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *stageName == "" || *match <= 0 || *player == "" {
		fmt.Fprintln(os.Stderr, "Please provide --stage, --match and --player.")
		fs.Usage()
		os.Exit(1)
	}
	stage, err := bracket.ParseStage(*stageName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	t := mutate(ctx, *tname, "record winner", func(t *bracket.Tournament) error {
		if stage == bracket.StageThirdPlace {
			return t.RecordThirdPlaceWinner(internal.NormalizeName(*player))
		}
		return t.RecordWinner(stage, *match-1, internal.NormalizeName(*player))
	})
	fmt.Print(bracket.BuildBracketOutput(t))
}

func stageStarter(name string,
	start func(t *bracket.Tournament) error) cmdHandler {

	return func(ctx context.Context, args []string) {
		fs, tname := newFlagSet(name)
		if err := fs.Parse(args); err != nil {
			os.Exit(1)
		}
		t := mutate(ctx, *tname, "start "+name, start)
		fmt.Print(bracket.BuildBracketOutput(t))
	}
}

func handleThird(ctx context.Context, args []string) {
	fs, tname := newFlagSet("third")
	player := fs.String("player", "", "Winner of the 3rd place match")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *player == "" {
		fmt.Fprintln(os.Stderr, "Please provide --player.")
		fs.Usage()
		os.Exit(1)
	}

	t := mutate(ctx, *tname, "record 3rd place", func(t *bracket.Tournament) error {
		return t.RecordThirdPlaceWinner(internal.NormalizeName(*player))
	})
	fmt.Print(bracket.BuildBracketOutput(t))
}

func handleUndo(ctx context.Context, args []string) {
	fs, tname := newFlagSet("undo")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	t := mutate(ctx, *tname, "undo", (*bracket.Tournament).Undo)
	fmt.Print(bracket.BuildBracketOutput(t))
}

func handleBracket(ctx context.Context, args []string) {
	fs, tname := newFlagSet("bracket")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	_, t := loadTournament(ctx, *tname)
	fmt.Print(bracket.BuildBracketOutput(t))
}

// applySort sets the sort mode when one was given and saves it with the
// tournament.
func applySort(st *store.Store, t *bracket.Tournament, mode string) {
	if mode == "" {
		return
	}
	m, err := bracket.ParseSortMode(mode)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	t.SetSortMode(m)
	saveTournament(st, t)
}

func handleStandings(ctx context.Context, args []string) {
	fs, tname := newFlagSet("standings")
	sortMode := fs.String("sort", "", "Sort by progress, wins or name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	st, t := loadTournament(ctx, *tname)
	applySort(st, t, *sortMode)
	fmt.Print(bracket.BuildStandingsOutput(t))
}

func handlePlayer(ctx context.Context, args []string) {
	fs, tname := newFlagSet("player")
	name := fs.String("name", "", "Player name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide --name.")
		fs.Usage()
		os.Exit(1)
	}
	_, t := loadTournament(ctx, *tname)
	output, err := bracket.BuildPlayerOutput(t, internal.NormalizeName(*name))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Print(output)
}

func handleExport(ctx context.Context, args []string) {
	fs, tname := newFlagSet("export")
	dir := fs.String("dir", ".", "Directory to write the export files to")
	dateStr := fs.String("date", "", "Date to stamp the file names with (default today)")
	withXLSX := fs.Bool("xlsx", false, "Also write an .xlsx workbook")
	sortMode := fs.String("sort", "", "Sort by progress, wins or name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	date, err := internal.ParseDateOrZero(*dateStr)
	if err != nil {
		log.Fatalf("Error parsing --date %q: %v", *dateStr, err)
	}
	if date.IsZero() {
		date = time.Now()
	}

	st, t := loadTournament(ctx, *tname)
	if len(t.Roster()) == 0 {
		log.Fatalf("Tournament %q has no players to export", t.Name)
	}
	applySort(st, t, *sortMode)

	paths, err := export.WriteAll(ctx, *dir, t, date, *withXLSX)
	if err != nil {
		log.Fatalf("Error exporting tournament %q: %v", t.Name, err)
	}
	for _, p := range paths {
		fmt.Printf("Wrote %v\n", p)
	}
	if !t.IsComplete() {
		fmt.Println("Final standings will be available once the finals and 3rd place match are decided.")
	}
}
