package condenser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shirerpeton/castCondenser/internal/common"
	"github.com/shirerpeton/castCondenser/internal/parser"
)

const DefaultMaxDelay = 2.0

var ErrSameFile = errors.New("Output recording is the same file as input")

// State carries the running totals of one scan.
type State struct {
	MaxDelay float64
	TotalCorrection float64
	LastTimestamp float64
}

func NewState(maxDelay float64) *State {
	return &State{MaxDelay: maxDelay}
}

// Adjust shifts raw by the correction accumulated so far and, if the gap to the
// previous frame is still longer than MaxDelay, clamps it and grows the correction.
func (s *State) Adjust(raw float64) (float64, bool) {
	timestamp := raw - s.TotalCorrection
	clamped := false
	if timestamp - s.LastTimestamp > s.MaxDelay {
		correction := timestamp - (s.LastTimestamp + s.MaxDelay)
		s.TotalCorrection += correction
		timestamp = s.LastTimestamp + s.MaxDelay
		clamped = true
	}
	s.LastTimestamp = timestamp
	return timestamp, clamped
}

// CondenseLine rewrites the timestamp of a frame line. Other lines are returned as is.
func (s *State) CondenseLine(line string) (string, error) {
	_, line, _, err := s.condenseLine(line)
	return line, err
}

func (s *State) condenseLine(line string) (float64, string, bool, error) {
	if !parser.IsFrame(line) {
		return 0, line, false, nil
	}
	raw, start, end, err := parser.FindTimestamp(line)
	if err != nil {
		return 0, "", false, err
	}
	timestamp, clamped := s.Adjust(raw)
	return raw, parser.ReplaceTimestamp(line, start, end, timestamp), clamped, nil
}

// Condense copies r to w line by line, capping every idle gap at maxDelay.
// Line terminators are kept, so only rewritten timestamps differ from the input.
// Statistics are recorded into file when it is not nil.
func Condense(r io.Reader, w io.Writer, maxDelay float64, file *common.CondenseFile) error {
	if file == nil {
		file = &common.CondenseFile{}
	}
	state := NewState(maxDelay)
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if len(line) > 0 {
			lineNo++
			raw, out, clamped, err := state.condenseLine(line)
			if err != nil {
				if flushErr := writer.Flush(); flushErr != nil {
					return flushErr
				}
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, err := writer.WriteString(out); err != nil {
				return err
			}
			if parser.IsFrame(line) {
				file.Frames++
				file.OriginalDuration = common.SecondsToDuration(raw)
				file.CondensedDuration = common.SecondsToDuration(state.LastTimestamp)
				if clamped {
					file.Clamped++
				}
			}
		}
		if readErr != nil {
			break
		}
	}
	file.Lines = lineNo
	return writer.Flush()
}

func ProcessFile(file *common.CondenseFile, maxDelay float64) (err error) {
	in, err := os.Open(file.Input)
	if err != nil {
		return fmt.Errorf("Can't open input recording: %w", err)
	}
	defer in.Close()

	inStat, err := in.Stat()
	if err != nil {
		return err
	}
	if outStat, err := os.Stat(file.Output); err == nil && os.SameFile(inStat, outStat) {
		return fmt.Errorf("%s: %w", file.Output, ErrSameFile)
	}

	outputDir := filepath.Dir(file.Output)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("Can't create output directory: %w", err)
	}
	out, err := os.Create(file.Output)
	if err != nil {
		return fmt.Errorf("Can't create output recording: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := Condense(in, out, maxDelay, file); err != nil {
		return fmt.Errorf("%s: %w", file.Input, err)
	}
	return nil
}

// Analyze runs the scan without writing anything, only filling file statistics.
func Analyze(file *common.CondenseFile, maxDelay float64) error {
	in, err := os.Open(file.Input)
	if err != nil {
		return fmt.Errorf("Can't open input recording: %w", err)
	}
	defer in.Close()

	if err := Condense(in, io.Discard, maxDelay, file); err != nil {
		return fmt.Errorf("%s: %w", file.Input, err)
	}
	return nil
}
