package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"net"
	"os"

	"roomviz/internal/config"
	"roomviz/internal/maps"
	"roomviz/internal/render"
	"roomviz/internal/server"
	"roomviz/internal/visualize"
)

const hostKeyPath = "host_key"

func main() {
	cfgPath := flag.String("config", "", "JSON config file")
	hostKey := flag.String("host-key", hostKeyPath, "SSH host key, generated if missing")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := cfg.Logger(os.Stderr)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Bad config")
	}

	if err := ensureHostKey(*hostKey); err != nil {
		log.Fatal().Err(err).Msg("Host key error")
	}

	shard, err := maps.LoadShard(cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load dataset")
	}
	log.Info().Str("dataset", cfg.Dataset).Int("rooms", len(shard.Rooms)).Msg("Dataset loaded")

	var sprites *render.SpriteSet
	if cfg.SpritesDir != "" {
		sprites, err = render.LoadSpriteSet(cfg.SpritesDir, log)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.SpritesDir).Msg("Failed to load sprites")
		}
	}
	p := visualize.New(visualize.Options{
		Scale: cfg.Scale,
		Tiles: render.NewTilePainter(cfg.Scale, sprites),
		Log:   &log,
	})

	srv := server.NewPreviewServer(cfg.SSHAddr, *hostKey, shard, p, log)
	_, port, err := net.SplitHostPort(cfg.SSHAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.SSHAddr).Msg("Bad listen address")
	}
	log.Info().Msgf("Starting roomviz preview server, try: ssh -p %s localhost %s", port, firstRoom(cfg, shard))
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("SSH server error")
	}
}

func firstRoom(cfg *config.Config, shard *maps.Shard) string {
	if len(cfg.Rooms) > 0 {
		return cfg.Rooms[0]
	}
	if names := shard.RoomNames(); len(names) > 0 {
		return names[0]
	}
	return "rooms"
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: der})
}
