package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// Delimiter selects how columns are separated
type Delimiter string

const (
	// Whitespace splits on any run of spaces or tabs
	Whitespace Delimiter = "whitespace"
	Tab        Delimiter = "tab"
	Comma      Delimiter = "comma"
)

// maxLineBytes bounds a single line; PPI identifiers are short.
const maxLineBytes = 1 << 20

// Options configures edge list parsing
type Options struct {
	Delimiter Delimiter `json:"delimiter" yaml:"delimiter" validate:"omitempty,oneof=whitespace tab comma"`
	// Header skips the first non-comment line
	Header bool `json:"header" yaml:"header"`
	// SkipSelfLoops drops lines that pair a node with itself instead of
	// handing them to the graph builder.
	SkipSelfLoops bool `json:"skip_self_loops" yaml:"skip_self_loops"`

	Build graph.BuildOptions `json:"build" yaml:"build"`
}

// DefaultOptions reads whitespace separated pairs without a header
func DefaultOptions() Options {
	return Options{
		Delimiter: Whitespace,
		Build:     graph.DefaultBuildOptions(),
	}
}

// Stats counts what the reader saw
type Stats struct {
	Lines            int `json:"lines"`
	Edges            int `json:"edges"`
	Comments         int `json:"comments"`
	SkippedSelfLoops int `json:"skipped_self_loops"`
}

// Read parses an edge list from r and builds the graph. Each data line holds
// two node keys and an optional non-negative weight; blank lines and lines
// starting with '#' are ignored.
func Read(r io.Reader, opts Options) (*graph.Graph, Stats, error) {
	var stats Stats
	if err := validation.ValidateStruct(&opts); err != nil {
		return nil, stats, fmt.Errorf("edge list options: %w", err)
	}
	split := splitter(opts.Delimiter)

	builder := graph.NewBuilder(opts.Build)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	headerPending := opts.Header
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			stats.Comments++
			continue
		}
		if headerPending {
			headerPending = false
			continue
		}

		fields := split(line)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, stats, &ParseError{Line: stats.Lines, Text: line, Reason: fmt.Sprintf("expected 2 or 3 columns, got %d", len(fields))}
		}

		weight := 0.0
		if len(fields) == 3 {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, stats, &ParseError{Line: stats.Lines, Text: line, Reason: "invalid weight", Cause: err}
			}
			weight = w
		}

		if opts.SkipSelfLoops && fields[0] == fields[1] {
			stats.SkippedSelfLoops++
			continue
		}
		if err := builder.AddEdge(fields[0], fields[1], weight); err != nil {
			return nil, stats, &ParseError{Line: stats.Lines, Text: line, Reason: "rejected edge", Cause: err}
		}
		stats.Edges++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading edge list: %w", err)
	}

	g, err := builder.Build()
	if err != nil {
		return nil, stats, err
	}
	return g, stats, nil
}

// ReadFile memory-maps path and parses it with Read
func ReadFile(path string, opts Options) (*graph.Graph, Stats, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open edge list: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return Read(io.NewSectionReader(reader, 0, int64(reader.Len())), opts)
}

func splitter(d Delimiter) func(string) []string {
	var sep string
	switch d {
	case Tab:
		sep = "\t"
	case Comma:
		sep = ","
	default:
		return strings.Fields
	}
	return func(line string) []string {
		parts := strings.Split(line, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
}
