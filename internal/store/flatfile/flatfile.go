// Package flatfile implements the ledger stores on comma-delimited text
// files, one entity per line. Reads load the whole file; appends add a
// single line; mutations rewrite the whole file. There is no locking: the
// files belong to the single running process.
package flatfile

import (
	"os"
	"strings"

	"fjacquet/taxi-ledger/internal/fileutils"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// readLines returns the non-blank lines of a file. A missing file is an
// empty store, not an error.
func readLines(path string) ([]string, error) {
	if !fileutils.FileExists(path) {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// appendLine adds one line to the end of a file, creating it if needed.
func appendLine(path, line string) error {
	return fileutils.AppendLine(path, line)
}

// writeLines rewrites a file in full with the given lines.
func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return fileutils.WriteFile(path, []byte(b.String()), 0644)
}
