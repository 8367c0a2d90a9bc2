// Package blueprint loads circuit layouts from TOML documents and applies
// them to a fresh circuit.Simulator, the way server/whitelist.go loads its
// player list: os.ReadFile followed by toml.Unmarshal, errors wrapped with
// fmt.Errorf.
package blueprint

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/wiregrid/redwire/circuit"
)

// Document is the on-disk TOML shape of a blueprint file.
type Document struct {
	Width  int         `toml:"width"`
	Height int         `toml:"height"`
	Blocks []Placement `toml:"blocks"`
}

// Placement is a single block entry in a blueprint.
type Placement struct {
	Kind     string `toml:"kind"`
	X        int    `toml:"x"`
	Y        int    `toml:"y"`
	Rotation string `toml:"rotation,omitempty"`
	Delay    int    `toml:"delay,omitempty"`
	Mode     string `toml:"mode,omitempty"`
	Material string `toml:"material,omitempty"`
}

// Load reads and decodes the blueprint file at path.
func Load(path string) (*Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	doc := &Document{}
	if err := toml.Unmarshal(contents, doc); err != nil {
		return nil, fmt.Errorf("decode blueprint: %w", err)
	}
	return doc, nil
}

// Save encodes doc as TOML and writes it to path.
func Save(path string, doc *Document) error {
	encoded, err := toml.Marshal(*doc)
	if err != nil {
		return fmt.Errorf("encode blueprint: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write blueprint: %w", err)
	}
	return nil
}

// NewSimulator builds a circuit.Simulator sized to doc and applies every
// placement in order via the ordinary engine API.
func NewSimulator(doc *Document, cfg circuit.Config) (*circuit.Simulator, error) {
	cfg.Width, cfg.Height = doc.Width, doc.Height
	sim := circuit.New(cfg)
	if err := Apply(sim, doc); err != nil {
		return nil, err
	}
	return sim, nil
}

// Apply places every block in doc onto sim, in order, using only
// Simulator's public engine API.
func Apply(sim *circuit.Simulator, doc *Document) error {
	for i, p := range doc.Blocks {
		if err := applyOne(sim, p); err != nil {
			return fmt.Errorf("blueprint entry %d (%s at %d,%d): %w", i, p.Kind, p.X, p.Y, err)
		}
	}
	return nil
}

func applyOne(sim *circuit.Simulator, p Placement) error {
	kind, ok := parseKind(p.Kind)
	if !ok {
		return fmt.Errorf("unknown block kind %q", p.Kind)
	}

	var err error
	if kind == circuit.KindSolid {
		materialTag := p.Material
		if materialTag == "" {
			materialTag = p.Kind
		}
		material, ok := parseMaterial(materialTag)
		if !ok {
			return fmt.Errorf("unknown material %q", p.Material)
		}
		_, err = sim.CreateSolid(material, p.X, p.Y)
	} else {
		_, err = sim.CreateBlock(kind, p.X, p.Y)
	}
	if err != nil {
		return err
	}

	steps, ok := parseRotationSteps(p.Rotation)
	if !ok {
		return fmt.Errorf("unknown rotation %q", p.Rotation)
	}
	for i := 0; i < steps; i++ {
		if err := sim.RotateBlock(p.X, p.Y); err != nil {
			return err
		}
	}

	if kind == circuit.KindRepeater && p.Delay > 1 {
		for i := 1; i < p.Delay; i++ {
			if err := sim.ConfigureRepeaterDelay(p.X, p.Y); err != nil {
				return err
			}
		}
	}

	if kind == circuit.KindComparator && p.Mode == "subtract" {
		if err := sim.ConfigureComparatorMode(p.X, p.Y); err != nil {
			return err
		}
	}

	if p.Kind == "lever_on" {
		if err := sim.Interact(p.X, p.Y); err != nil {
			return err
		}
	}

	return nil
}

func parseKind(s string) (circuit.BlockKind, bool) {
	switch s {
	case "wire":
		return circuit.KindWire, true
	case "torch":
		return circuit.KindTorch, true
	case "lever", "lever_on":
		return circuit.KindLever, true
	case "button":
		return circuit.KindButton, true
	case "repeater":
		return circuit.KindRepeater, true
	case "comparator":
		return circuit.KindComparator, true
	case "observer":
		return circuit.KindObserver, true
	case "piston":
		return circuit.KindPiston, true
	case "sticky_piston":
		return circuit.KindStickyPiston, true
	case "power_source":
		return circuit.KindPowerSource, true
	case "solid", "stone", "obsidian", "bedrock":
		return circuit.KindSolid, true
	default:
		return circuit.KindUnknown, false
	}
}

func parseMaterial(s string) (circuit.SolidMaterial, bool) {
	switch s {
	case "", "stone":
		return circuit.MaterialStone, true
	case "obsidian":
		return circuit.MaterialObsidian, true
	case "bedrock":
		return circuit.MaterialBedrock, true
	default:
		return 0, false
	}
}

func parseRotationSteps(s string) (int, bool) {
	switch s {
	case "":
		return 0, true
	case "north":
		return 0, true
	case "east":
		return 1, true
	case "south":
		return 2, true
	case "west":
		return 3, true
	default:
		return 0, false
	}
}
