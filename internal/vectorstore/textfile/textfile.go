// Package textfile reads and appends the pipe-delimited question/response file.
//
// Each line holds one pair as question|response. The question ends at the first
// separator; the response keeps any further separators verbatim. Lines without a
// separator are skipped. There is no escaping, so a question cannot contain the
// separator and neither side can contain a newline.
package textfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"qabot/internal/domain"
)

// Separator splits the question from the response on a line.
const Separator = "|"

// Stats describes a parse run.
type Stats struct {
	Lines     int
	Malformed int
}

// Parse reads pairs from r. Malformed lines are counted, never reported as errors;
// only a failing reader is.
func Parse(r io.Reader) ([]domain.QAPair, Stats, error) {
	var (
		pairs []domain.QAPair
		stats Stats
	)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			stats.Lines++
			if pair, ok := ParseLine(line); ok {
				pairs = append(pairs, pair)
			} else {
				stats.Malformed++
			}
		}
		if errors.Is(err, io.EOF) {
			return pairs, stats, nil
		}
		if err != nil {
			return pairs, stats, errors.Wrap(err, "read store source")
		}
	}
}

// ParseLine splits a single line on the first separator, ignoring trailing line endings.
func ParseLine(line string) (domain.QAPair, bool) {
	line = strings.TrimRight(line, "\r\n")
	question, response, ok := strings.Cut(line, Separator)
	if !ok {
		return domain.QAPair{}, false
	}
	return domain.QAPair{Question: question, Response: response}, true
}

// Load parses the file at path. When the file cannot be opened the OS error is returned
// marked with domain.ErrSourceUnavailable.
func Load(path string) ([]domain.QAPair, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "open %s", path), domain.ErrSourceUnavailable),
			"add question|response lines to the file, or teach the bot to create it")
	}
	defer f.Close()
	return Parse(f)
}

// Validate reports whether a pair survives a write and re-read unchanged.
// Blank questions or responses are rejected too.
func Validate(question, response string) error {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(response) == "" {
		return errors.Wrap(domain.ErrInvalidEntry, "question and response must not be blank")
	}
	if strings.Contains(question, Separator) {
		return errors.Wrapf(domain.ErrInvalidEntry, "question %q contains %q", question, Separator)
	}
	if strings.ContainsAny(question, "\r\n") || strings.ContainsAny(response, "\r\n") {
		return errors.Wrap(domain.ErrInvalidEntry, "entry contains a line break")
	}
	return nil
}

// Journal appends pairs to the store file. The file is only ever appended to.
type Journal struct {
	Path string
}

// NewJournal returns a journal writing to path.
func NewJournal(path string) *Journal { return &Journal{Path: path} }

// Append writes one pair on its own line, creating the file if needed.
// A line break is written first so a file lacking a trailing newline stays well formed.
func (j *Journal) Append(question, response string) error {
	f, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "open %s", j.Path), domain.ErrWriteFailure)
	}
	if _, err := f.WriteString("\n" + question + Separator + response); err != nil {
		_ = f.Close()
		return errors.Mark(errors.Wrapf(err, "write %s", j.Path), domain.ErrWriteFailure)
	}
	if err := f.Close(); err != nil {
		return errors.Mark(errors.Wrapf(err, "close %s", j.Path), domain.ErrWriteFailure)
	}
	return nil
}
