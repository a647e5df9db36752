// Package maps loads offline shard snapshots: every room's terrain and the
// static objects placed in it.
package maps

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"roomviz/internal/room"
)

// roomNamePattern matches shard room names such as W56N22 or E0S13.
var roomNamePattern = regexp.MustCompile(`^[WE]\d{1,3}[NS]\d{1,3}$`)

// ValidRoomName reports whether name is a well-formed room name.
func ValidRoomName(name string) bool {
	return roomNamePattern.MatchString(name)
}

// Object is a static room object from the snapshot.
type Object struct {
	Type        string
	X, Y        int
	MineralType string
}

// XY returns the object position.
func (o Object) XY() room.XY {
	return room.XY{X: o.X, Y: o.Y}
}

// RoomData is one room of a shard snapshot.
type RoomData struct {
	Name    string
	Status  string
	Terrain *room.Terrain
	Objects []Object
}

// Shard is a loaded snapshot indexed by room name.
type Shard struct {
	Description string
	Rooms       map[string]*RoomData
}

// jsonShard is the on-disk JSON format.
type jsonShard struct {
	Description string     `json:"description"`
	Rooms       []jsonRoom `json:"rooms"`
}

type jsonRoom struct {
	Room    string       `json:"room"`
	Status  string       `json:"status,omitempty"`
	Terrain string       `json:"terrain"`
	Objects []jsonObject `json:"objects"`
}

type jsonObject struct {
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	MineralType string `json:"mineralType,omitempty"`
}

// LoadShard reads a JSON shard snapshot from disk.
func LoadShard(path string) (*Shard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read shard file: %w", err)
	}
	defer f.Close()

	s, err := DecodeShard(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DecodeShard parses a JSON shard snapshot.
func DecodeShard(r io.Reader) (*Shard, error) {
	var js jsonShard
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, fmt.Errorf("parse shard JSON: %w", err)
	}

	shard := &Shard{
		Description: js.Description,
		Rooms:       make(map[string]*RoomData, len(js.Rooms)),
	}
	for _, jr := range js.Rooms {
		if !ValidRoomName(jr.Room) {
			return nil, fmt.Errorf("invalid room name %q", jr.Room)
		}
		if _, exists := shard.Rooms[jr.Room]; exists {
			return nil, fmt.Errorf("duplicate room %q", jr.Room)
		}

		terrain, err := room.ParseTerrain(jr.Terrain)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", jr.Room, err)
		}

		objects := make([]Object, 0, len(jr.Objects))
		for _, jo := range jr.Objects {
			o := Object{Type: jo.Type, X: jo.X, Y: jo.Y, MineralType: jo.MineralType}
			if !o.XY().Valid() {
				return nil, fmt.Errorf("room %s: %s object at (%d,%d) is out of bounds", jr.Room, jo.Type, jo.X, jo.Y)
			}
			objects = append(objects, o)
		}

		shard.Rooms[jr.Room] = &RoomData{
			Name:    jr.Room,
			Status:  jr.Status,
			Terrain: terrain,
			Objects: objects,
		}
	}
	return shard, nil
}

// EncodeShard writes s in the format DecodeShard reads, rooms sorted by name.
func EncodeShard(w io.Writer, s *Shard) error {
	js := jsonShard{Description: s.Description, Rooms: make([]jsonRoom, 0, len(s.Rooms))}
	for _, name := range s.RoomNames() {
		rd := s.Rooms[name]
		jr := jsonRoom{
			Room:    rd.Name,
			Status:  rd.Status,
			Terrain: rd.Terrain.Encode(),
			Objects: make([]jsonObject, 0, len(rd.Objects)),
		}
		for _, o := range rd.Objects {
			jr.Objects = append(jr.Objects, jsonObject{Type: o.Type, X: o.X, Y: o.Y, MineralType: o.MineralType})
		}
		js.Rooms = append(js.Rooms, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(js); err != nil {
		return fmt.Errorf("encode shard JSON: %w", err)
	}
	return nil
}

// Room returns the named room, or nil and false when the shard lacks it.
func (s *Shard) Room(name string) (*RoomData, bool) {
	rd, ok := s.Rooms[name]
	return rd, ok
}

// RoomNames returns every room name in sorted order.
func (s *Shard) RoomNames() []string {
	names := make([]string, 0, len(s.Rooms))
	for name := range s.Rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
