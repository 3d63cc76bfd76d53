// Package service wires the scanner, parser, resolver and writer into a
// single resolution run.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/railtools/consistfix/internal/adapters/consist"
	"github.com/railtools/consistfix/internal/adapters/scan"
	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/scoring"
	"github.com/railtools/consistfix/internal/domain/taxonomy"
	"github.com/railtools/consistfix/internal/resolver"
	"github.com/railtools/consistfix/pkg/logger"
	"github.com/railtools/consistfix/pkg/metrics"
)

// Report summarizes one resolution run.
type Report struct {
	RunID           string
	TotalEntries    int
	Resolved        int
	Changed         int
	Unresolved      int
	AlreadyMatching int
	AssetsIndexed   int
	FilesModified   int
	Duration        time.Duration
	PhaseBreakdown  map[string]int
}

// ResolutionRate is the fraction of entries matched to an asset.
func (r *Report) ResolutionRate() float64 {
	if r.TotalEntries == 0 {
		return 0
	}
	return float64(r.Resolved) / float64(r.TotalEntries)
}

// ChangeRate is the fraction of entries that were rewritten.
func (r *Report) ChangeRate() float64 {
	if r.TotalEntries == 0 {
		return 0
	}
	return float64(r.Changed) / float64(r.TotalEntries)
}

// Service runs the resolution pipeline end to end.
type Service struct {
	trainsetDir   string
	consistDir    string
	workerCount   int
	dryRun        bool
	explain       bool
	semantic      bool
	seed          int64
	oilIndicators []string
	weights       scoring.Weights

	out    io.Writer
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTrainsetDir sets the rolling stock library root.
func WithTrainsetDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.trainsetDir = dir
		}
	}
}

// WithConsistDir sets the directory holding .con files.
func WithConsistDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.consistDir = dir
		}
	}
}

// WithWorkerCount sets the number of resolution workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDryRun reports changes without writing files.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) {
		s.dryRun = dryRun
	}
}

// WithExplain prints a per-entry resolution report.
func WithExplain(explain bool) Option {
	return func(s *Service) {
		s.explain = explain
	}
}

// WithSemanticMatch toggles the fuzzy similarity phase.
func WithSemanticMatch(enabled bool) Option {
	return func(s *Service) {
		s.semantic = enabled
	}
}

// WithTieBreakSeed seeds the score perturbation.
func WithTieBreakSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithOilIndicators overrides the oil related substrings.
func WithOilIndicators(indicators []string) Option {
	return func(s *Service) {
		if len(indicators) > 0 {
			s.oilIndicators = indicators
		}
	}
}

// WithWeights sets the scoring weight table.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithOutput redirects the summary and explain report.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		trainsetDir: "trainset",
		consistDir:  "consists",
		semantic:    true,
		seed:        scoring.DefaultSeed,
		weights:     scoring.DefaultWeights(),
		out:         os.Stdout,
		logger:      logger.Get().Named("service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one full resolution pass: scan the trainset, parse the
// consists, resolve every entry, write changes unless dry-run, and print
// the summary.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	s.logger.Info(ctx, "starting resolution run",
		logger.String("run_id", runID),
		logger.String("trainset_dir", s.trainsetDir),
		logger.String("consist_dir", s.consistDir),
	)

	classifier := taxonomy.New()
	detector := detect.New(classifier)
	extractor := metadata.New(classifier, detector)
	ranker := scoring.New(detector,
		scoring.WithSeed(s.seed),
		scoring.WithWeights(s.weights),
	)

	scanner := scan.New(extractor, detector)
	idx, err := scanner.Scan(ctx, s.trainsetDir)
	if err != nil {
		return nil, fmt.Errorf("building asset index: %w", err)
	}
	indexed := idx.Statistics().TotalAssets

	parser := consist.NewParser()
	files, err := parser.ParseDir(ctx, s.consistDir)
	if err != nil {
		return nil, fmt.Errorf("parsing consists: %w", err)
	}

	var tasks []resolver.Task
	for _, file := range files {
		for _, entry := range file.Entries {
			tasks = append(tasks, resolver.Task{
				Index:  len(tasks),
				Kind:   entry.Kind,
				Folder: entry.Folder,
				Name:   entry.Name,
			})
		}
	}

	s.logger.Info(ctx, "parsed consist files",
		logger.Int("files", len(files)),
		logger.Int("entries", len(tasks)),
	)

	res := resolver.New(idx, extractor, detector, ranker,
		resolver.WithOilIndicators(s.oilIndicators),
		resolver.WithSemanticMatch(s.semantic),
	)
	pool := resolver.NewPool(res, s.workerCount)
	metrics.UpdateWorkerCount(pool.Workers())

	results := pool.ResolveAll(ctx, tasks)

	if s.explain {
		s.printExplain(tasks, results)
	}

	modified := 0
	if s.dryRun {
		s.logger.Info(ctx, "dry-run mode, no changes written")
	} else {
		writer := consist.NewWriter()
		modified, err = writer.Write(ctx, files, results)
		if err != nil {
			return nil, fmt.Errorf("writing consists: %w", err)
		}
		metrics.RecordFilesModified(modified)
	}

	duration := time.Since(start)
	metrics.ObserveResolutionDuration(duration.Seconds())

	report := s.buildReport(runID, res, results, indexed, modified, duration)
	s.printSummary(report)

	s.logger.Info(ctx, "resolution run complete",
		logger.String("run_id", runID),
		logger.Int("resolved", report.Resolved),
		logger.Int("changed", report.Changed),
		logger.Int("unresolved", report.Unresolved),
		logger.String("duration", duration.Round(time.Millisecond).String()),
	)

	return report, nil
}

func (s *Service) buildReport(runID string, res *resolver.Resolver, results []*model.MatchResult, indexed, modified int, duration time.Duration) *Report {
	stats := res.Stats().Snapshot()

	breakdown := make(map[string]int, len(stats.ByPhase))
	for phase, count := range stats.ByPhase {
		breakdown[phase.String()] = count
	}

	return &Report{
		RunID:           runID,
		TotalEntries:    len(results),
		Resolved:        stats.Resolved,
		Changed:         stats.Changed,
		Unresolved:      stats.Unresolved,
		AlreadyMatching: stats.AlreadyMatching(),
		AssetsIndexed:   indexed,
		FilesModified:   modified,
		Duration:        duration,
		PhaseBreakdown:  breakdown,
	}
}

// printExplain writes the per-entry report: changed entries first, then
// unresolved with their locked attributes, then entries already matching.
func (s *Service) printExplain(tasks []resolver.Task, results []*model.MatchResult) {
	var changed, unresolved, unchanged []string

	for i, result := range results {
		task := tasks[i]

		resolvedInfo := "UNRESOLVED"
		if result.IsResolved() {
			resolvedInfo = result.Chosen.Folder + "/" + result.Chosen.Name
		}

		msg := fmt.Sprintf("%s %s/%s -> %s Phase=%s Score=%.0f Reason=%s | %s",
			task.Kind, task.Folder, task.Name, resolvedInfo,
			result.Phase, result.Score, result.Reason,
			attributeSummary(result),
		)

		switch {
		case !result.IsResolved():
			unresolved = append(unresolved, msg, "  DIFF: "+attributeSummary(result))
		case result.IsChanged():
			changed = append(changed, msg)
		default:
			unchanged = append(unchanged, msg)
		}
	}

	if len(changed) > 0 {
		fmt.Fprintln(s.out, "--- CHANGED ENTRIES ---")
		for _, msg := range changed {
			fmt.Fprintln(s.out, msg)
		}
	}
	if len(unresolved) > 0 {
		fmt.Fprintln(s.out, "--- UNRESOLVED ENTRIES ---")
		for _, msg := range unresolved {
			fmt.Fprintln(s.out, msg)
		}
	}
	if len(unchanged) > 0 {
		fmt.Fprintln(s.out, "--- UNCHANGED (already matching) ---")
		for _, msg := range unchanged {
			fmt.Fprintln(s.out, msg)
		}
	}
}

// attributeSummary renders locked versus chosen attributes per entry.
func attributeSummary(result *model.MatchResult) string {
	chosen := map[string]string{"family": "", "subtype": "", "class": "", "build": ""}
	if result.Chosen != nil {
		meta := result.Chosen.Meta
		chosen["class"] = firstOf(meta.FreightType, meta.CoachType, meta.EngineClass)
	}

	pairs := make([]string, 0, 4)
	for _, attr := range []struct {
		label  string
		locked string
		key    string
	}{
		{"Family", result.Family, "family"},
		{"Subtype", result.Subtype, "subtype"},
		{"Class", result.Class, "class"},
		{"Build", result.Build, "build"},
	} {
		lval := attr.locked
		if lval == "" {
			lval = "-"
		}
		cval := chosen[attr.key]
		if cval == "" {
			cval = "-"
		}
		if lval != cval && cval != "-" {
			pairs = append(pairs, fmt.Sprintf("%s: %s -> %s", attr.label, lval, cval))
		} else {
			pairs = append(pairs, fmt.Sprintf("%s: %s", attr.label, lval))
		}
	}

	out := pairs[0]
	for _, p := range pairs[1:] {
		out += " | " + p
	}
	return out
}

// printSummary renders the final run summary table.
func (s *Service) printSummary(report *Report) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle("CONSIST RESOLVER - RUN %s", report.RunID)
	t.AppendRows([]table.Row{
		{"Entries Processed", report.TotalEntries, ""},
		{"Assets Indexed", report.AssetsIndexed, ""},
		{"Processing Time", report.Duration.Round(time.Millisecond).String(), ""},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Resolved", report.Resolved, percent(report.Resolved, report.TotalEntries)},
		{"Changed", report.Changed, percent(report.Changed, report.TotalEntries)},
		{"Already Matching", report.AlreadyMatching, percent(report.AlreadyMatching, report.TotalEntries)},
		{"Unresolved", report.Unresolved, percent(report.Unresolved, report.TotalEntries)},
	})

	if len(report.PhaseBreakdown) > 0 {
		t.AppendSeparator()
		phases := make([]string, 0, len(report.PhaseBreakdown))
		for phase := range report.PhaseBreakdown {
			phases = append(phases, phase)
		}
		sort.Strings(phases)
		for _, phase := range phases {
			count := report.PhaseBreakdown[phase]
			t.AppendRow(table.Row{phase, count, percent(count, report.TotalEntries)})
		}
	}

	if !s.dryRun {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Files Modified", report.FilesModified, ""})
	}

	t.Render()

	if report.Changed > 0 && s.dryRun {
		fmt.Fprintf(s.out, "Run without dry-run to apply %d changes\n", report.Changed)
	}
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
