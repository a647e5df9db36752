package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"roomviz/internal/config"
	"roomviz/internal/maps"
	"roomviz/internal/room"
	"roomviz/internal/synth"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	grid := flag.String("grid", "2x2", "room grid as WxH, named W0N0 upwards")
	rooms := flag.String("rooms", "", "comma separated room names (overrides -grid)")
	sources := flag.Int("sources", 2, "sources per room")
	extractor := flag.Bool("extractor", false, "place an extractor on every mineral")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	cfg := config.Default()
	log := cfg.Logger(os.Stderr)

	names := config.SplitRooms(*rooms)
	if len(names) == 0 {
		w, h, err := parseGrid(*grid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		names = synth.RoomNames(w, h)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	opts := synth.DefaultOptions(*seed)
	opts.Sources = *sources
	opts.Extractor = *extractor

	log.Info().Int64("seed", *seed).Int("rooms", len(names)).Msg("Generating shard")
	shard, err := synth.Shard(names, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := maps.EncodeShard(&buf, shard); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding shard: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		os.Stdout.Write(buf.Bytes())
	} else {
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		log.Info().Str("path", *out).Int("bytes", buf.Len()).Msg("Shard written")
	}

	printDistribution(shard)
}

func printDistribution(shard *maps.Shard) {
	counts := make(map[room.TerrainKind]int)
	total := 0
	for _, rd := range shard.Rooms {
		for k, n := range synth.Distribution(rd.Terrain) {
			counts[k] += n
			total += n
		}
	}
	kinds := make([]room.TerrainKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return counts[kinds[i]] > counts[kinds[j]] })

	fmt.Fprintf(os.Stderr, "\nTerrain distribution:\n")
	for _, k := range kinds {
		pct := float64(counts[k]) / float64(total) * 100
		fmt.Fprintf(os.Stderr, "  %-6s %6d (%5.1f%%) %s\n", k, counts[k], pct, strings.Repeat("█", int(pct/2)))
	}
}

func parseGrid(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid grid %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid grid width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid grid height %q", parts[1])
	}
	return w, h, nil
}
