// Package fixture generates synthetic trainsets and drifted consists for
// exercising the resolver at scale.
package fixture

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/railtools/consistfix/pkg/logger"
)

// engineTemplates are the asset folders laid down for engines.
var engineTemplates = map[string][]string{
	"IR_WAP7":  {"WAP7_30203", "WAP7_30301", "WAP7_30452"},
	"IR_WAP4":  {"WAP4_22236", "WAP4_22581"},
	"IR_WDM3A": {"WDM3A_16540", "WDM3A_18799"},
	"IR_WDG4":  {"WDG4_12015"},
	"IR_WAG9":  {"WAG9_31063", "WAG9_31338"},
}

// wagonTemplates are the asset folders laid down for coaches and freight.
var wagonTemplates = map[string][]string{
	"IR_Coaches_LHB": {"LHB_SL_1234", "LHB_3A_2201", "LHB_CC_3302", "LHB_GS_4408"},
	"IR_Wagons_Open": {"BOXN_4518", "BOXN_4521", "BOXNHL_7702"},
	"IR_Wagons_Cov":  {"BCNA_2210", "BCNHL_3305"},
	"IR_Tankers":     {"BTPN_101", "BTPN_115"},
}

var defaultAssets = map[string]string{
	"DEFAULT_ENGINE_WAP7": ".eng",
	"DEFAULT_WAGON_BOXN":  ".wag",
}

// Summary reports what one generation run produced.
type Summary struct {
	AssetsCreated   int
	ConsistsCreated int
	EntriesWritten  int
	DriftedEntries  int
}

// Generator writes a reproducible trainset and consist set to disk.
type Generator struct {
	trainsetDir  string
	consistDir   string
	consistCount int
	rakeLength   int
	driftRate    float64
	seed         int64
	logger       logger.Logger
}

// New constructs a Generator with default sizing.
func New(opts ...Option) *Generator {
	g := &Generator{
		trainsetDir:  "trainset",
		consistDir:   "consists",
		consistCount: 10,
		rakeLength:   8,
		driftRate:    0.3,
		seed:         1,
		logger:       logger.Get().Named("fixture"),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate lays down the trainset and consist files. Runs with the same
// seed produce identical trees.
func (g *Generator) Generate(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	rng := rand.New(rand.NewSource(g.seed))

	if err := g.writeTrainset(summary); err != nil {
		return nil, err
	}
	if err := g.writeConsists(ctx, rng, summary); err != nil {
		return nil, err
	}

	g.logger.Info(ctx, "fixture generated",
		logger.Int("assets", summary.AssetsCreated),
		logger.Int("consists", summary.ConsistsCreated),
		logger.Int("entries", summary.EntriesWritten),
		logger.Int("drifted", summary.DriftedEntries),
	)

	return summary, nil
}

func (g *Generator) writeTrainset(summary *Summary) error {
	write := func(folder, name, ext string) error {
		dir := filepath.Join(g.trainsetDir, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating asset folder: %w", err)
		}
		content := "SIMISA@@@@@@@@@@JINX0D0t______\n\nAsset ( " + name + " )\n"
		if err := os.WriteFile(filepath.Join(dir, name+ext), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing asset: %w", err)
		}
		summary.AssetsCreated++
		return nil
	}

	for folder, names := range engineTemplates {
		for _, name := range names {
			if err := write(folder, name, ".eng"); err != nil {
				return err
			}
		}
	}
	for folder, names := range wagonTemplates {
		for _, name := range names {
			if err := write(folder, name, ".wag"); err != nil {
				return err
			}
		}
	}
	for name, ext := range defaultAssets {
		if err := write("_defaults", name, ext); err != nil {
			return err
		}
	}

	return nil
}

func (g *Generator) writeConsists(ctx context.Context, rng *rand.Rand, summary *Summary) error {
	if err := os.MkdirAll(g.consistDir, 0o755); err != nil {
		return fmt.Errorf("creating consist dir: %w", err)
	}

	engineFolders := sortedKeys(engineTemplates)
	wagonFolders := sortedKeys(wagonTemplates)

	for i := 0; i < g.consistCount; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := fmt.Sprintf("rake_%03d", i+1)

		var b strings.Builder
		b.WriteString("SIMISA@@@@@@@@@@JINX0D0t______\n\n")
		b.WriteString("Train (\n")
		b.WriteString("\tTrainCfg ( \"" + name + "\"\n")
		fmt.Fprintf(&b, "\t\tSerial ( %d )\n", i+1)

		engFolder := engineFolders[rng.Intn(len(engineFolders))]
		engName := pick(rng, engineTemplates[engFolder])
		engName, engFolder, drifted := g.drift(rng, engName, engFolder)
		if drifted {
			summary.DriftedEntries++
		}
		b.WriteString("\t\tEngine (\n\t\t\tUiD ( 0 )\n")
		fmt.Fprintf(&b, "\t\t\tEngineData ( %s \"%s\" )\n", engName, engFolder)
		b.WriteString("\t\t)\n")
		summary.EntriesWritten++

		for w := 0; w < g.rakeLength; w++ {
			wagFolder := wagonFolders[rng.Intn(len(wagonFolders))]
			wagName := pick(rng, wagonTemplates[wagFolder])
			wagName, wagFolder, drifted = g.drift(rng, wagName, wagFolder)
			if drifted {
				summary.DriftedEntries++
			}
			b.WriteString("\t\tWagon (\n")
			fmt.Fprintf(&b, "\t\t\tUiD ( %d )\n", w+1)
			fmt.Fprintf(&b, "\t\t\tWagonData ( %s \"%s\" )\n", wagName, wagFolder)
			b.WriteString("\t\t)\n")
			summary.EntriesWritten++
		}

		b.WriteString("\t)\n)\n")

		path := filepath.Join(g.consistDir, name+".con")
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("writing consist: %w", err)
		}
		summary.ConsistsCreated++
	}

	return nil
}

// drift perturbs an entry so it no longer points at an installed asset:
// either the folder goes stale or the serial digits shift.
func (g *Generator) drift(rng *rand.Rand, name, folder string) (string, string, bool) {
	if rng.Float64() >= g.driftRate {
		return name, folder, false
	}

	if rng.Intn(2) == 0 {
		return name, "Old_" + folder, true
	}
	return bumpDigits(name), folder, true
}

// bumpDigits shifts the trailing digit so only a near serial exists.
func bumpDigits(name string) string {
	runes := []rune(name)
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] >= '0' && runes[i] <= '9' {
			runes[i] = '0' + (runes[i]-'0'+1)%10
			return string(runes)
		}
	}
	return name + "_x"
}

func pick(rng *rand.Rand, names []string) string {
	return names[rng.Intn(len(names))]
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
