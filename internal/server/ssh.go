package server

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"

	"roomviz/internal/maps"
	"roomviz/internal/render"
	"roomviz/internal/visualize"
)

// Exit statuses of a preview command.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// DefaultVariant is shown when the command names no variant.
const DefaultVariant = 1

const usage = "usage: ssh -p PORT HOST <room> [variant] | rooms"

// PreviewServer answers one-shot SSH commands with a terminal preview of a
// rendered room.
type PreviewServer struct {
	addr     string
	hostKey  string
	shard    *maps.Shard
	pipeline *visualize.Pipeline
	log      zerolog.Logger
}

// NewPreviewServer creates a server bound to addr serving rooms of shard.
func NewPreviewServer(addr, hostKey string, shard *maps.Shard, p *visualize.Pipeline, log zerolog.Logger) *PreviewServer {
	return &PreviewServer{
		addr:     addr,
		hostKey:  hostKey,
		shard:    shard,
		pipeline: p,
		log:      log,
	}
}

// Start begins listening for SSH connections.
func (s *PreviewServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.log.Info().Str("addr", s.addr).Msg("SSH server listening")
	return server.ListenAndServe()
}

func (s *PreviewServer) handleSession(sess ssh.Session) {
	args := sess.Command()
	log := s.log.With().Str("user", sess.User()).Strs("args", args).Logger()
	log.Info().Msg("Preview requested")

	code := s.Run(args, sess, sess.Stderr())
	log.Info().Int("status", code).Msg("Preview done")
	if err := sess.Exit(code); err != nil {
		log.Debug().Err(err).Msg("exit status not delivered")
	}
}

// Run executes one preview command, writing the preview to out and any
// message to errOut, and returns the exit status.
func (s *PreviewServer) Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(errOut, usage)
		return ExitUsage
	}
	if args[0] == "rooms" && len(args) == 1 {
		fmt.Fprintln(out, strings.Join(s.shard.RoomNames(), "\n"))
		return ExitOK
	}

	variant := DefaultVariant
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			fmt.Fprintf(errOut, "Error: invalid variant %q\n", args[1])
			return ExitUsage
		}
		variant = v
	}

	rd, ok := s.shard.Room(args[0])
	if !ok {
		fmt.Fprintf(errOut, "Error: unknown room %s\n", args[0])
		return ExitError
	}

	imgs, err := s.pipeline.RenderRoom(rd)
	if err != nil {
		s.log.Error().Err(err).Str("room", rd.Name).Msg("render failed")
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitError
	}
	if variant >= len(imgs) {
		fmt.Fprintf(errOut, "Error: room %s has %d variants\n", rd.Name, len(imgs))
		return ExitUsage
	}

	if err := render.WritePreview(out, imgs[variant]); err != nil {
		s.log.Debug().Err(err).Msg("preview write failed")
		return ExitError
	}
	return ExitOK
}
