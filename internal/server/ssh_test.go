package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"roomviz/internal/maps"
	"roomviz/internal/render"
	"roomviz/internal/room"
	"roomviz/internal/visualize"
)

func newTestServer() *PreviewServer {
	shard := &maps.Shard{Rooms: map[string]*maps.RoomData{
		"W1N1": {Name: "W1N1", Terrain: &room.Terrain{}},
		"W2N1": {Name: "W2N1", Terrain: &room.Terrain{}},
	}}
	return NewPreviewServer(":0", "host_key", shard, visualize.New(visualize.Options{}), zerolog.Nop())
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"default variant", []string{"W1N1"}, ExitOK, render.CSI, ""},
		{"base variant", []string{"W1N1", "0"}, ExitOK, render.CSI, ""},
		{"list rooms", []string{"rooms"}, ExitOK, "W1N1\nW2N1\n", ""},
		{"unknown room", []string{"W9N9"}, ExitError, "", "unknown room W9N9"},
		{"no args", nil, ExitUsage, "", "usage"},
		{"bad variant", []string{"W1N1", "x"}, ExitUsage, "", "invalid variant"},
		{"variant out of range", []string{"W1N1", "2"}, ExitUsage, "", "has 2 variants"},
		{"too many args", []string{"W1N1", "1", "2"}, ExitUsage, "", "usage"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := s.Run(tt.args, &out, &errOut)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			} else {
				assert.Empty(t, out.String())
			}
			if tt.wantErr != "" {
				assert.Contains(t, errOut.String(), tt.wantErr)
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestRunPreviewRows(t *testing.T) {
	var out bytes.Buffer
	code := newTestServer().Run([]string{"W1N1"}, &out, &bytes.Buffer{})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, room.Size/2, strings.Count(out.String(), "\n"))
}
