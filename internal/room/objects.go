package room

// ResourceKind is a harvestable object.
type ResourceKind string

const (
	Source ResourceKind = "source"

	MineralHydrogen  ResourceKind = "H"
	MineralOxygen    ResourceKind = "O"
	MineralUtrium    ResourceKind = "U"
	MineralLemergium ResourceKind = "L"
	MineralKeanium   ResourceKind = "K"
	MineralZynthium  ResourceKind = "Z"
	MineralCatalyst  ResourceKind = "X"
)

// MineralKinds lists every mineral resource.
var MineralKinds = []ResourceKind{
	MineralHydrogen, MineralOxygen, MineralUtrium, MineralLemergium,
	MineralKeanium, MineralZynthium, MineralCatalyst,
}

// StructureKind is a buildable structure drawn on the base layer.
type StructureKind string

const (
	ConstructedWall StructureKind = "constructedWall"
	Controller      StructureKind = "controller"
	Extractor       StructureKind = "extractor"
	Terminal        StructureKind = "terminal"
)
