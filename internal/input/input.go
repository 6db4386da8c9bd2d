// Package input normalizes batches of paths received from other processes.
package input

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

const (
	nullDelimiter    = '\x00'
	newlineDelimiter = '\n'
	maxTokenSize     = 1024 * 1024
	nullSeparator    = "\x00"

	byteOrderMark = '\uFEFF'
	nextLine      = '\u0085'
)

// HandleXargsNull flattens items that carry several newline-separated entries, as happens
// when NUL-delimited output is joined and re-split elsewhere. Every entry is trimmed and
// empty entries are dropped; relative order is preserved.
func HandleXargsNull(items []string) []string {
	result := []string{}
	for _, item := range items {
		for _, entry := range strings.FieldsFunc(item, isNewline) {
			trimmedEntry := strings.TrimFunc(entry, isTrimmable)
			if trimmedEntry == "" {
				continue
			}
			result = append(result, trimmedEntry)
		}
	}
	return result
}

// ReadNullDelimited splits reader on NUL bytes. Items keep any embedded newlines and
// a trailing empty item is not produced.
func ReadNullDelimited(reader io.Reader) ([]string, error) {
	return scanItems(reader, splitOn(nullDelimiter))
}

// ReadLines splits reader on newlines.
func ReadLines(reader io.Reader) ([]string, error) {
	return scanItems(reader, splitOn(newlineDelimiter))
}

// SplitNullDelimited splits already-read text on NUL bytes.
func SplitNullDelimited(text string) []string {
	items := strings.Split(text, nullSeparator)
	if len(items) > 0 && items[len(items)-1] == "" {
		items = items[:len(items)-1]
	}
	return items
}

func scanItems(reader io.Reader, split bufio.SplitFunc) ([]string, error) {
	items := []string{}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(split)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return items, nil
}

func splitOn(delimiter byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if index := bytes.IndexByte(data, delimiter); index >= 0 {
			return index + 1, data[:index], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

func isNewline(character rune) bool {
	return character == newlineDelimiter
}

// isTrimmable reports the characters stripped around entries: Unicode white space except NEL,
// plus the byte order mark.
func isTrimmable(character rune) bool {
	if character == byteOrderMark {
		return true
	}
	return character != nextLine && unicode.IsSpace(character)
}
