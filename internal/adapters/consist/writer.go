package consist

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/pkg/logger"
)

// Writer rewrites consist files with resolved asset references.
type Writer struct {
	logger logger.Logger
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{logger: logger.Get().Named("consist")}
}

// Write applies resolution results to the parsed files and saves every
// file that changed. Results must be in parse order, one per entry across
// all files. Returns the number of files modified.
func (w *Writer) Write(ctx context.Context, files []*File, results []*model.MatchResult) (int, error) {
	total := 0
	for _, file := range files {
		total += len(file.Entries)
	}
	if len(results) < total {
		return 0, fmt.Errorf("%w: %d results for %d entries", ErrResultMismatch, len(results), total)
	}

	modified := 0
	next := 0
	for _, file := range files {
		changes := 0
		lines := make([]string, len(file.Lines))
		copy(lines, file.Lines)

		for _, entry := range file.Entries {
			result := results[next]
			next++

			if !result.IsResolved() || !result.IsChanged() {
				continue
			}

			chosen := result.Chosen
			lines[entry.LineIndex] = fmt.Sprintf("    %s ( %s \"%s\" )", entry.KindToken, chosen.Name, chosen.Folder)
			changes++

			w.logger.Info(ctx, "rewriting asset reference",
				logger.String("file", file.Filename),
				logger.Int("line", entry.LineIndex+1),
				logger.String("from", entry.Folder+"/"+entry.Name),
				logger.String("to", chosen.Folder+"/"+chosen.Name),
			)
		}

		if changes == 0 {
			continue
		}

		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(file.Path, []byte(content), 0o644); err != nil {
			w.logger.Error(ctx, "failed to write consist file",
				logger.String("path", file.Path),
				logger.Error(err),
			)
			continue
		}

		modified++
		w.logger.Info(ctx, "updated consist file",
			logger.String("path", file.Path),
			logger.Int("changes", changes),
		)
	}

	return modified, nil
}
