package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"roomviz/internal/config"
	"roomviz/internal/maps"
	"roomviz/internal/output"
	"roomviz/internal/regions"
	"roomviz/internal/render"
	"roomviz/internal/room"
	"roomviz/internal/visualize"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var code int
	switch cmd {
	case "render":
		code = runRender(args)
	case "path":
		code = runPath(args)
	case "preview":
		code = runPreview(args, os.Stdout)
	case "validate":
		code = runValidate(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		code = 1
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: roomviz <command> [flags]

Commands:
  render     Render every configured room into <out>/<room>_<i>.png and index.html
  path       Render one room with a path overlay
  preview    Print one room variant as terminal art
  validate   Load the dataset and check every configured room

Run roomviz <command> -h for the flags of a command.`)
}

// env holds the settings, logger and loaded dataset of one command.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	shard *maps.Shard
}

// common registers the shared flags on fs and returns a loader that applies
// them over the config file and environment.
func common(fs *flag.FlagSet) func() (*env, error) {
	cfgPath := fs.String("config", "", "JSON config file")
	dataset := fs.String("dataset", "", "shard snapshot JSON")
	rooms := fs.String("rooms", "", "comma separated room names")
	scale := fs.Int("scale", 0, "pixels per tile")
	level := fs.String("log-level", "", "log level (debug, info, warn, error)")
	sprites := fs.String("sprites", "", "directory of PNG tile sprites")

	return func() (*env, error) {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return nil, err
		}
		if *dataset != "" {
			cfg.Dataset = *dataset
		}
		if *rooms != "" {
			cfg.Rooms = config.SplitRooms(*rooms)
		}
		if *scale > 0 {
			cfg.Scale = *scale
		}
		if *level != "" {
			cfg.LogLevel = *level
		}
		if *sprites != "" {
			cfg.SpritesDir = *sprites
		}
		return &env{cfg: cfg, log: cfg.Logger(os.Stderr)}, nil
	}
}

func (e *env) load() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	shard, err := maps.LoadShard(e.cfg.Dataset)
	if err != nil {
		return err
	}
	e.log.Info().Str("dataset", e.cfg.Dataset).Int("rooms", len(shard.Rooms)).Msg("Dataset loaded")
	e.shard = shard
	return nil
}

func (e *env) pipeline() (*visualize.Pipeline, error) {
	var sprites *render.SpriteSet
	if e.cfg.SpritesDir != "" {
		s, err := render.LoadSpriteSet(e.cfg.SpritesDir, e.log)
		if err != nil {
			return nil, err
		}
		e.log.Info().Strs("sprites", s.Names()).Msg("Sprites loaded")
		sprites = s
	}
	return visualize.New(visualize.Options{
		Scale: e.cfg.Scale,
		Tiles: render.NewTilePainter(e.cfg.Scale, sprites),
		Log:   &e.log,
	}), nil
}

func (e *env) room(name string) (*maps.RoomData, error) {
	rd, ok := e.shard.Room(name)
	if !ok {
		return nil, fmt.Errorf("room %s not in %s", name, e.cfg.Dataset)
	}
	return rd, nil
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// --- render ---

func runRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	setup := common(fs)
	out := fs.String("out", "", "output directory")
	workers := fs.Int("workers", 0, "rooms rendered in parallel")
	fs.Parse(args)

	e, err := setup()
	if err != nil {
		return fail(err)
	}
	if *out != "" {
		e.cfg.OutputDir = *out
	}
	if *workers > 0 {
		e.cfg.Workers = *workers
	}
	if err := e.load(); err != nil {
		return fail(err)
	}
	p, err := e.pipeline()
	if err != nil {
		return fail(err)
	}
	w, err := output.NewWriter(e.cfg.OutputDir, e.log)
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := p.RenderBatch(ctx, e.shard, e.cfg.Rooms, e.cfg.Workers, w)

	var rendered []string
	failed := 0
	for _, r := range results {
		switch {
		case r.Skipped:
		case r.Err != nil:
			failed++
		default:
			rendered = append(rendered, r.Room)
		}
	}
	if _, err := w.WriteIndex(rendered); err != nil {
		return fail(err)
	}

	e.log.Info().Int("rendered", len(rendered)).Int("failed", failed).
		Int("skipped", len(results)-len(rendered)-failed).Msg("Done")
	if failed > 0 {
		return 1
	}
	return 0
}

// --- path ---

func runPath(args []string) int {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	setup := common(fs)
	name := fs.String("room", "", "room name")
	steps := fs.String("path", "", `tiles as "x,y x,y ..."`)
	out := fs.String("o", "", "output PNG (default <out>/<room>_path.png)")
	fs.Parse(args)

	if *name == "" || *steps == "" {
		fmt.Fprintln(os.Stderr, `Usage: roomviz path -room W1N1 -path "2,2 2,3 3,4" [-o file.png]`)
		return 1
	}
	path, err := room.ParsePath(*steps)
	if err != nil {
		return fail(err)
	}

	e, err := setup()
	if err != nil {
		return fail(err)
	}
	if err := e.load(); err != nil {
		return fail(err)
	}
	rd, err := e.room(*name)
	if err != nil {
		return fail(err)
	}
	p, err := e.pipeline()
	if err != nil {
		return fail(err)
	}
	img, err := p.RenderPath(rd, path)
	if err != nil {
		return fail(err)
	}

	dst := *out
	if dst == "" {
		if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
			return fail(err)
		}
		dst = filepath.Join(e.cfg.OutputDir, rd.Name+"_path.png")
	}
	if err := output.SavePNG(dst, img); err != nil {
		return fail(err)
	}
	e.log.Info().Str("room", rd.Name).Int("steps", len(path)).Str("path", dst).Msg("Path rendered")
	return 0
}

// --- preview ---

func runPreview(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	setup := common(fs)
	name := fs.String("room", "", "room name (default: first configured room)")
	variant := fs.Int("variant", 1, "variant index")
	fs.Parse(args)

	e, err := setup()
	if err != nil {
		return fail(err)
	}
	if err := e.load(); err != nil {
		return fail(err)
	}
	if *name == "" && len(e.cfg.Rooms) > 0 {
		*name = e.cfg.Rooms[0]
	}
	rd, err := e.room(*name)
	if err != nil {
		return fail(err)
	}
	p, err := e.pipeline()
	if err != nil {
		return fail(err)
	}
	imgs, err := p.RenderRoom(rd)
	if err != nil {
		return fail(err)
	}
	if *variant < 0 || *variant >= len(imgs) {
		return fail(fmt.Errorf("variant %d out of range [0..%d]", *variant, len(imgs)-1))
	}

	fmt.Fprintf(stdout, "%s (variant %d)\n", rd.Name, *variant)
	if err := render.WritePreview(stdout, imgs[*variant]); err != nil {
		return fail(err)
	}
	return 0
}

// --- validate ---

func runValidate(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	setup := common(fs)
	all := fs.Bool("all", false, "check every room in the dataset, not only the configured ones")
	fs.Parse(args)

	e, err := setup()
	if err != nil {
		return fail(err)
	}
	if err := e.load(); err != nil {
		fmt.Fprintf(stdout, "FAIL: %v\n", err)
		return 1
	}

	names := e.cfg.Rooms
	if *all {
		names = e.shard.RoomNames()
	}

	errors := 0
	for _, name := range names {
		fmt.Fprintf(stdout, "Validating %s...\n", name)
		rd, ok := e.shard.Room(name)
		if !ok {
			fmt.Fprintln(stdout, "  ERROR: not in dataset")
			errors++
			continue
		}
		errors += validateRoom(stdout, rd)
	}

	if errors > 0 {
		fmt.Fprintf(stdout, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(stdout, "\nAll %d rooms valid\n", len(names))
	return 0
}

// validateRoom prints problems with rd and a summary line, returning the
// number of problems.
func validateRoom(w io.Writer, rd *maps.RoomData) int {
	errors := 0
	walkable := 0
	for _, k := range rd.Terrain {
		if k.Walkable() {
			walkable++
		}
	}
	if walkable == 0 {
		fmt.Fprintln(w, "  ERROR: no walkable tiles")
		errors++
	}

	var ignored []string
	for _, o := range rd.Objects {
		_, res := o.Resource()
		_, st := o.Structure()
		if !res && !st {
			ignored = append(ignored, o.Type)
		}
	}

	a, err := regions.Analyze(rd.Terrain)
	if err != nil {
		fmt.Fprintf(w, "  ERROR: analysis: %v\n", err)
		return errors + 1
	}
	st := a.Stats()

	if errors == 0 {
		fmt.Fprintf(w, "  OK (%d walkable, %d regions, %d border tiles, max height %d, largest %d)\n",
			walkable, st.Regions, st.BorderTiles, st.MaxHeight, st.Largest)
		if len(ignored) > 0 {
			fmt.Fprintf(w, "  ignored objects: %s\n", strings.Join(ignored, ", "))
		}
	}
	return errors
}
