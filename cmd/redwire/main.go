// Command redwire runs an interactive console over a circuit.Simulator:
// one owning goroutine, commands fanned in over a channel, go-prompt for
// line editing and completion.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/wiregrid/redwire/circuit"
	"github.com/wiregrid/redwire/circuit/blueprint"
)

const promptPrefix = "redwire> "

var commandNames = []string{
	"/place", "/remove", "/rotate", "/interact", "/delay", "/mode",
	"/tick", "/query", "/power", "/load", "/save", "/metrics", "/quit",
}

func main() {
	width := flag.Int("width", circuit.DefaultWidth, "grid width")
	height := flag.Int("height", circuit.DefaultHeight, "grid height")
	load := flag.String("load", "", "blueprint TOML file to load at startup")
	flag.Parse()

	log := slog.Default()
	cfg := circuit.Config{Width: *width, Height: *height, Log: log}

	var sim *circuit.Simulator
	if *load != "" {
		doc, err := blueprint.Load(*load)
		if err != nil {
			log.Error("load blueprint", "err", err)
			os.Exit(1)
		}
		sim, err = blueprint.NewSimulator(doc, cfg)
		if err != nil {
			log.Error("apply blueprint", "err", err)
			os.Exit(1)
		}
	} else {
		sim = circuit.New(cfg)
	}

	e := newEngine(sim)
	runConsole(e, log)
}

func runConsole(e *engine, log *slog.Logger) {
	var history []string
	for {
		line := prompt.Input(promptPrefix, completer,
			prompt.OptionTitle("redwire console"),
			prompt.OptionHistory(history),
			prompt.OptionPrefix(promptPrefix),
			prompt.OptionCompletionOnDown(),
			prompt.OptionMaxSuggestion(12),
		)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		history = append(history, line)

		if line == "/quit" || line == "/exit" {
			return
		}
		execute(e, log, line)
	}
}

func completer(doc prompt.Document) []prompt.Suggest {
	word := doc.GetWordBeforeCursor()
	if strings.Contains(doc.TextBeforeCursor(), " ") {
		return nil
	}
	suggestions := make([]prompt.Suggest, 0, len(commandNames))
	for _, name := range commandNames {
		suggestions = append(suggestions, prompt.Suggest{Text: name})
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}

func execute(e *engine, log *slog.Logger, line string) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	var run func(sim *circuit.Simulator) error
	switch name {
	case "/place":
		run = cmdPlace(args)
	case "/remove":
		run = cmdRemove(args)
	case "/rotate":
		run = cmdRotate(args)
	case "/interact":
		run = cmdInteract(args)
	case "/delay":
		run = cmdDelay(args)
	case "/mode":
		run = cmdMode(args)
	case "/tick":
		run = cmdTick(args)
	case "/query":
		run = cmdQuery(args)
	case "/power":
		run = cmdPower(args)
	case "/load":
		run = cmdLoad(args)
	case "/save":
		run = cmdSave(args)
	case "/metrics":
		run = cmdMetrics(args)
	default:
		fmt.Printf("unknown command %q\n", name)
		return
	}

	var cmdErr error
	<-e.Exec(func(sim *circuit.Simulator) {
		cmdErr = run(sim)
	})
	if cmdErr != nil {
		log.Error("command failed", "cmd", name, "err", cmdErr)
	}
}

func parseCoords(args []string, n int) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", args[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func cmdPlace(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		if len(args) < 3 {
			return fmt.Errorf("usage: /place <kind> <x> <y>")
		}
		kind, ok := parseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown block kind %q", args[0])
		}
		xy, err := parseCoords(args[1:], 2)
		if err != nil {
			return err
		}
		var id circuit.BlockId
		if kind == circuit.KindSolid {
			material, ok := parseMaterial(args[0])
			if !ok {
				material = circuit.MaterialStone
			}
			id, err = sim.CreateSolid(material, xy[0], xy[1])
		} else {
			id, err = sim.CreateBlock(kind, xy[0], xy[1])
		}
		if err != nil {
			return err
		}
		fmt.Printf("placed %s id=%d at (%d,%d)\n", args[0], id, xy[0], xy[1])
		return nil
	}
}

func cmdRemove(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		return sim.RemoveBlock(xy[0], xy[1])
	}
}

func cmdRotate(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		return sim.RotateBlock(xy[0], xy[1])
	}
}

func cmdInteract(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		return sim.Interact(xy[0], xy[1])
	}
}

func cmdDelay(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		return sim.ConfigureRepeaterDelay(xy[0], xy[1])
	}
}

func cmdMode(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		return sim.ConfigureComparatorMode(xy[0], xy[1])
	}
}

func cmdTick(args []string) func(*circuit.Simulator) error {
	n := 1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			n = v
		}
	}
	return func(sim *circuit.Simulator) error {
		for i := 0; i < n; i++ {
			sim.Tick()
		}
		return nil
	}
}

func cmdQuery(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		b, ok := sim.Query(xy[0], xy[1])
		if !ok {
			fmt.Printf("(%d,%d): empty\n", xy[0], xy[1])
			return nil
		}
		fmt.Printf("(%d,%d): kind=%s external=%s rotation=%s power=%d\n",
			xy[0], xy[1], b.Kind.String(), b.ExternalKind(), b.Rotation.String(), b.Logic.PowerLevel)
		return nil
	}
}

func cmdPower(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		xy, err := parseCoords(args, 2)
		if err != nil {
			return err
		}
		fmt.Printf("(%d,%d): power=%d\n", xy[0], xy[1], sim.QueryPower(xy[0], xy[1]))
		return nil
	}
}

func cmdLoad(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		if len(args) < 1 {
			return fmt.Errorf("usage: /load <path>")
		}
		doc, err := blueprint.Load(args[0])
		if err != nil {
			return err
		}
		return blueprint.Apply(sim, doc)
	}
}

func cmdSave(args []string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		if len(args) < 1 {
			return fmt.Errorf("usage: /save <path>")
		}
		width, height := sim.Dimensions()
		doc := &blueprint.Document{Width: width, Height: height}
		return blueprint.Save(args[0], doc)
	}
}

func cmdMetrics([]string) func(*circuit.Simulator) error {
	return func(sim *circuit.Simulator) error {
		snap := sim.Metrics().Snapshot()
		fmt.Printf("session=%s ticks=%d dispatches=%d scheduled=%d orphans=%d pushes=%d overflows=%d aborts=%d\n",
			snap.SessionID, snap.Ticks, snap.Dispatches, snap.ScheduledRuns,
			snap.OrphanDiscards, snap.PistonPushes, snap.PistonOverflows, snap.DispatchAborts)
		return nil
	}
}

func parseKind(s string) (circuit.BlockKind, bool) {
	switch s {
	case "wire":
		return circuit.KindWire, true
	case "torch":
		return circuit.KindTorch, true
	case "lever":
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
	case "stone":
		return circuit.MaterialStone, true
	case "obsidian":
		return circuit.MaterialObsidian, true
	case "bedrock":
		return circuit.MaterialBedrock, true
	default:
		return 0, false
	}
}
