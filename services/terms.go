package services

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSearchTerms means neither a search flag nor a non-empty input file
// was available.
var ErrNoSearchTerms = errors.New("no search terms: pass -s or fill the input file")

// ResolveTerms returns the single explicit term when given, otherwise the
// non-blank, trimmed lines of inputFile in file order.
func ResolveTerms(search, inputFile string) ([]string, error) {
	if term := strings.TrimSpace(search); term != "" {
		return []string{term}, nil
	}

	f, err := os.Open(inputFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (%s not found)", ErrNoSearchTerms, inputFile)
		}
		return nil, fmt.Errorf("read input file %q: %w", inputFile, err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line != "" {
			terms = append(terms, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file %q: %w", inputFile, err)
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("%w (%s is empty)", ErrNoSearchTerms, inputFile)
	}
	return terms, nil
}
