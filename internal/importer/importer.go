// Package importer loads a daily price series from a local CSV file, trying
// each schema assumption in order until one parses.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"StockKit/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrParse        = errors.New("cannot parse file")
)

// StrategyError is the failure of one strategy.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string { return e.Strategy + ": " + e.Err.Error() }
func (e *StrategyError) Unwrap() error { return e.Err }

// ImportError carries every strategy's failure for a file none could parse.
type ImportError struct {
	Path     string
	Failures []*StrategyError
}

func (e *ImportError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%v %s: %s", ErrParse, e.Path, strings.Join(msgs, "; also failed: "))
}

func (e *ImportError) Unwrap() []error {
	errs := []error{ErrParse}
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Importer tries its strategies in order.
type Importer struct {
	Strategies []Strategy
}

// New returns an Importer with the index-column then date-column strategies.
func New() *Importer {
	return &Importer{Strategies: []Strategy{IndexColumn{}, DateColumn{}}}
}

// Import reads path and returns the first successfully parsed series.
// The symbol defaults to the file's base name.
func (im *Importer) Import(path, symbol string) (*model.Series, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if symbol == "" {
		symbol = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ierr := &ImportError{Path: path}
	for _, s := range im.Strategies {
		series, err := s.Parse(bytes.NewReader(data), symbol, path)
		if err != nil {
			log.Printf("[WARN] import %s with %s failed: %v", path, s.Name(), err)
			ierr.Failures = append(ierr.Failures, &StrategyError{Strategy: s.Name(), Err: err})
			continue
		}
		log.Printf("[INFO] imported %d rows from %s using %s", series.Len(), path, s.Name())
		return series, nil
	}
	return nil, ierr
}
