package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const maxLineBytes = 1024 * 1024

// TSVStats holds parser statistics for logging.
type TSVStats struct {
	TotalLines   int
	SkippedShort int
	SkippedEmpty int
	Parsed       int
}

// TSVResult holds the pair items parsed from a parallel-corpus TSV stream.
type TSVResult struct {
	Items []PairItem
	Stats TSVStats
}

// ParseTSV reads parallel-corpus lines in the JParaCrawl layout:
//
//	col0: source domain (source side)
//	col1: source domain (target side)
//	col2: alignment score
//	col3: source text
//	col4: target text
//
// Four-column variants carry the texts in the last two columns and no
// score. Shorter lines and lines with an empty text side are counted and
// skipped rather than failing the whole stream.
func ParseTSV(r io.Reader) (TSVResult, error) {
	var result TSVResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		result.Stats.TotalLines++

		item, ok := parseTSVLine(scanner.Text())
		switch {
		case !ok:
			result.Stats.SkippedShort++
		case item.SourceText == "" || item.TargetText == "":
			result.Stats.SkippedEmpty++
		default:
			result.Stats.Parsed++
			result.Items = append(result.Items, item)
		}
	}

	if err := scanner.Err(); err != nil {
		return TSVResult{}, fmt.Errorf("scan tsv: %w", err)
	}
	return result, nil
}

// ParseTSVFile opens and parses a parallel-corpus TSV file.
func ParseTSVFile(path string) (TSVResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return TSVResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ParseTSV(f)
}

func parseTSVLine(line string) (PairItem, bool) {
	fields := strings.Split(strings.TrimRight(line, "\n"), "\t")

	switch {
	case len(fields) >= 5:
		item := PairItem{
			SourceText: strings.TrimSpace(fields[3]),
			TargetText: strings.TrimSpace(fields[4]),
		}
		if score, err := strconv.ParseFloat(fields[2], 64); err == nil {
			item.Score = &score
		}
		return item, true
	case len(fields) == 4:
		return PairItem{
			SourceText: strings.TrimSpace(fields[2]),
			TargetText: strings.TrimSpace(fields[3]),
		}, true
	default:
		return PairItem{}, false
	}
}
