// Package consist reads and rewrites MSTS consist (.con) files. The files
// in the wild come in a mix of encodings, mostly UTF-16 with a BOM, and
// reference rolling stock as Engine/Wagon blocks holding an EngineData or
// WagonData line.
package consist

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
)

// Entry is a single asset reference inside a consist file.
type Entry struct {
	LineIndex int
	Kind      types.Kind
	Folder    string
	Name      string
	KindToken string
	Line      string
}

// File is a parsed consist file with its raw lines preserved for rewriting.
type File struct {
	Path     string
	Filename string
	Entries  []Entry
	Lines    []string
}

// RequiredFolders returns every trainset folder the consist references.
func (f *File) RequiredFolders() map[string]struct{} {
	folders := make(map[string]struct{})
	for _, entry := range f.Entries {
		if entry.Folder != "" {
			folders[entry.Folder] = struct{}{}
		}
	}
	return folders
}

var (
	wagonBlockStart  = regexp.MustCompile(`(?i)^\s*Wagon\s*\(`)
	engineBlockStart = regexp.MustCompile(`(?i)^\s*Engine\s*\(`)
	assetDataRef     = regexp.MustCompile(`(?i)(EngineData|WagonData)\s*\(([^)]*)\)`)
)

// Parser reads consist files.
type Parser struct {
	logger logger.Logger
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{logger: logger.Get().Named("consist")}
}

// ParseDir parses every .con file directly under dir, sorted by name.
func (p *Parser) ParseDir(ctx context.Context, dir string) ([]*File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.con"))
	if err != nil {
		return nil, fmt.Errorf("globbing consist files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoConsists, dir)
	}
	sort.Strings(paths)

	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		file, err := p.ParseFile(path)
		if err != nil {
			p.logger.Warn(ctx, "skipping unreadable consist file",
				logger.String("path", path),
				logger.Error(err),
			)
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

// ParseFile reads and parses one consist file.
func (p *Parser) ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading consist file: %w", err)
	}

	lines := decodeLines(data)
	file := &File{
		Path:     path,
		Filename: filepath.Base(path),
		Lines:    make([]string, len(lines)),
	}
	for i, line := range lines {
		file.Lines[i] = strings.TrimRight(line, " \t\r")
	}

	blockStart := -1
	var block []string
	for i, line := range lines {
		if wagonBlockStart.MatchString(line) || engineBlockStart.MatchString(line) {
			blockStart = i
			block = []string{line}
			continue
		}
		if blockStart < 0 {
			continue
		}

		block = append(block, line)
		if strings.TrimSpace(line) != ")" {
			continue
		}

		for j, blockLine := range block {
			m := assetDataRef.FindStringSubmatch(blockLine)
			if m == nil {
				continue
			}

			tokens := splitQuoted(strings.TrimSpace(m[2]))
			var name, folder string
			if len(tokens) > 0 {
				name = tokens[0]
			}
			if len(tokens) > 1 {
				folder = tokens[1]
			}

			kind := types.KindWagon
			if strings.HasPrefix(strings.ToLower(m[1]), "engine") {
				kind = types.KindEngine
			}

			file.Entries = append(file.Entries, Entry{
				LineIndex: blockStart + j,
				Kind:      kind,
				Folder:    folder,
				Name:      name,
				KindToken: m[1],
				Line:      strings.TrimSpace(blockLine),
			})
		}

		blockStart = -1
		block = nil
	}

	return file, nil
}

// decodeLines decodes raw consist bytes into lines. A UTF-16 BOM, or NUL
// bytes early in the file, mean UTF-16; otherwise plain UTF-8 and then
// Windows-1252 are tried in order.
func decodeLines(data []byte) []string {
	head := data
	if len(head) > 128 {
		head = head[:128]
	}

	if bytes.HasPrefix(data, []byte{0xff, 0xfe}) ||
		bytes.HasPrefix(data, []byte{0xfe, 0xff}) ||
		bytes.IndexByte(head, 0) >= 0 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return splitLines(string(out))
		}
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, _ := dec.Bytes(data)
		return splitLines(string(out))
	}

	if utf8.Valid(data) {
		return splitLines(strings.TrimPrefix(string(data), "\ufeff"))
	}

	if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return splitLines(string(out))
	}

	return splitLines(string(data))
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// splitQuoted splits a data reference argument list into tokens, honoring
// double quotes so folder names with spaces survive.
func splitQuoted(s string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			if inQuotes {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
