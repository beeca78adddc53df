package config

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Parse reads the environment config file at path.
//
// A missing file yields an empty config and a nil error. Any other read
// failure yields the entries parsed so far and a *ReadError.
func Parse(path string, logger Logger) (VenvConfig, error) {
	logger = orDefault(logger)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("environment config not found", "path", path)
			return VenvConfig{}, nil
		}
		return VenvConfig{}, &ReadError{Path: path, Cause: err}
	}
	defer f.Close()

	cfg, err := ParseReader(f, logger)
	if err != nil {
		return cfg, &ReadError{Path: path, Cause: err}
	}
	logger.Debug("parsed environment config", "path", path, "keys", len(cfg))
	return cfg, nil
}

// ParseReader parses "key = value" lines from r. The returned error is
// non-nil only when r itself fails; the config then holds the lines read
// before the failure.
func ParseReader(r io.Reader, logger Logger) (VenvConfig, error) {
	logger = orDefault(logger)
	cfg := VenvConfig{}

	// bufio.Reader has no line length limit, so one oversized line cannot
	// end parsing early.
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			key, value, ok := parseLine(strings.TrimRight(line, "\r\n"))
			if ok {
				cfg[key] = value
			} else {
				logger.Debug("skipping config line", "line", lineNo)
			}
		}
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		if err != nil {
			return cfg, err
		}
	}
}

// parseLine splits a single line on its first '='. Both sides are trimmed.
// ok is false unless both key and value are non-empty.
func parseLine(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(k)
	value = unquote(strings.TrimSpace(v))
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// unquote drops the first and last character of a value that starts with a
// quote character. The closing character is not checked: `'abc"` becomes
// `abc`.
func unquote(value string) string {
	if value == "" || !strings.ContainsRune(quoteChars, rune(value[0])) {
		return value
	}
	if len(value) < 2 {
		return ""
	}
	return value[1 : len(value)-1]
}
