// Package codegen implements the binary-to-C-string back end: turning one
// or more arbitrary input files into a single generated source file of
// escaped C string literals, the way a resource/asset embedding step would.
// This is the logic behind the "-embed_binary_cstring" CLI subcommand; the
// Transform pass (src/transform) only describes the work as a tool
// invocation, it never runs it.
package codegen

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kdt3rd/constructor/src/variable"
)

const hexDigits = "0123456789ABCDEF"
const bytesPerLine = 20

// Options configures one EmitCode run.
type Options struct {
	Inputs []string

	FilePrefixFile string
	FileSuffixFile string
	ItemPrefixFile string
	ItemSuffixFile string
	ItemIndentFile string

	DoCommas bool

	Output io.Writer
}

// EmitCode reads opts.Inputs and writes the resulting C string literals to
// opts.Output.
func EmitCode(opts Options) error {
	filePrefix, err := readLines(opts.FilePrefixFile)
	if err != nil {
		return err
	}
	fileSuffix, err := readLines(opts.FileSuffixFile)
	if err != nil {
		return err
	}
	itemPrefix, err := readLines(opts.ItemPrefixFile)
	if err != nil {
		return err
	}
	itemSuffix, err := readLines(opts.ItemSuffixFile)
	if err != nil {
		return err
	}
	itemIndent, err := readLines(opts.ItemIndentFile)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(opts.Output)
	defer w.Flush()

	for _, line := range filePrefix {
		fmt.Fprintln(w, line)
	}

	for i, path := range opts.Inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("codegen: read %s: %w", path, err)
		}
		lookup := variable.MapLookup{
			"item_name":      baseName(path),
			"item_file_size": fmt.Sprintf("%d", len(data)),
		}
		indent := ""
		if len(itemIndent) > 0 {
			indent = variable.Substitute(itemIndent[0], false, lookup)
		}

		var itemLines []string
		for _, line := range itemPrefix {
			itemLines = append(itemLines, variable.Substitute(line, false, lookup))
		}
		if len(data) == 0 {
			itemLines = append(itemLines, emitBytes(data)...)
		} else {
			for _, line := range emitBytes(data) {
				itemLines = append(itemLines, indent+line)
			}
		}
		for _, line := range itemSuffix {
			itemLines = append(itemLines, variable.Substitute(line, false, lookup))
		}

		if opts.DoCommas && i != len(opts.Inputs)-1 && len(itemLines) > 0 {
			itemLines[len(itemLines)-1] += ","
		}
		for _, line := range itemLines {
			fmt.Fprintln(w, line)
		}
	}

	for _, line := range fileSuffix {
		fmt.Fprintln(w, line)
	}
	return nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

// emitBytes renders data as double-quoted C string literal lines, at most
// bytesPerLine bytes per line, each byte as an uppercase "\xHH" escape. An
// empty input emits the single line `""`.
func emitBytes(data []byte) []string {
	if len(data) == 0 {
		return []string{`""`}
	}
	var lines []string
	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		var sb []byte
		sb = append(sb, '"')
		for _, b := range data[i:end] {
			sb = append(sb, '\\', 'x', hexDigits[b>>4], hexDigits[b&0xF])
		}
		sb = append(sb, '"')
		lines = append(lines, string(sb))
	}
	return lines
}

func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codegen: open %s: %w", path, err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("codegen: read %s: %w", path, err)
	}
	return lines, nil
}
