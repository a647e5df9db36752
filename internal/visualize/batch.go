package visualize

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"roomviz/internal/maps"
)

// Sink receives the variants of one room, typically to persist them.
type Sink interface {
	SaveVariants(room string, imgs []*image.RGBA) ([]string, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(room string, imgs []*image.RGBA) ([]string, error)

// SaveVariants calls f(room, imgs).
func (f SinkFunc) SaveVariants(room string, imgs []*image.RGBA) ([]string, error) {
	return f(room, imgs)
}

// Result is the outcome of one room in a batch.
type Result struct {
	Room    string
	Files   []string
	Skipped bool
	Err     error
}

// RenderBatch renders names from shard with at most workers rooms in
// flight and hands each room to sink. A failure affects only its own
// Result. Results are in the order of names.
func (p *Pipeline) RenderBatch(ctx context.Context, shard *maps.Shard, names []string, workers int, sink Sink) []Result {
	results := make([]Result, len(names))
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		results[i].Room = name
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		rd, ok := shard.Room(name)
		if !ok {
			p.log.Warn().Str("room", name).Msg("room not in dataset, skipping")
			results[i].Skipped = true
			continue
		}

		i, rd := i, rd // per-iteration copies; go directive is 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i] = p.renderOne(rd, sink)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) renderOne(rd *maps.RoomData, sink Sink) Result {
	res := Result{Room: rd.Name}
	imgs, err := p.RenderRoom(rd)
	if err != nil {
		p.log.Error().Err(err).Str("room", rd.Name).Msg("render failed")
		res.Err = err
		return res
	}
	if sink == nil {
		return res
	}
	files, err := sink.SaveVariants(rd.Name, imgs)
	if err != nil {
		p.log.Error().Err(err).Str("room", rd.Name).Msg("save failed")
		res.Err = fmt.Errorf("save %s: %w", rd.Name, err)
		return res
	}
	res.Files = files
	p.log.Info().Str("room", rd.Name).Strs("files", files).Msg("Room rendered")
	return res
}
