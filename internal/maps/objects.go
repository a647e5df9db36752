package maps

import "roomviz/internal/room"

// Snapshot object types drawn by the visualizer. Anything else is ignored.
const (
	TypeSource          = "source"
	TypeMineral         = "mineral"
	TypeConstructedWall = "constructedWall"
	TypeController      = "controller"
	TypeExtractor       = "extractor"
	TypeTerminal        = "terminal"
)

// Resource returns the resource kind of a source or mineral object.
func (o Object) Resource() (room.ResourceKind, bool) {
	switch o.Type {
	case TypeSource:
		return room.Source, true
	case TypeMineral:
		return room.ResourceKind(o.MineralType), true
	}
	return "", false
}

// Structure returns the structure kind of a buildable structure object.
func (o Object) Structure() (room.StructureKind, bool) {
	switch o.Type {
	case TypeConstructedWall:
		return room.ConstructedWall, true
	case TypeController:
		return room.Controller, true
	case TypeExtractor:
		return room.Extractor, true
	case TypeTerminal:
		return room.Terminal, true
	}
	return "", false
}
