// Command constructor resolves a project's item graph into a build-graph
// ready for a downstream generator, and doubles as the back end invoked for
// "-embed_binary_cstring" code-generation steps it describes.
package main

import (
	"bytes"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/kdt3rd/constructor/src/cli/logging"
	"github.com/kdt3rd/constructor/src/codegen"
)

var opts struct {
	Verbose bool `short:"v" long:"verbose" description:"enable verbose logging"`

	EmbedBinaryCString struct {
		Output     string `long:"output" required:"true" description:"path to write the generated C string source to"`
		FilePrefix string `long:"file_prefix" description:"file containing lines emitted once before the first input"`
		FileSuffix string `long:"file_suffix" description:"file containing lines emitted once after the last input"`
		ItemPrefix string `long:"item_prefix" description:"file containing lines emitted before each input's bytes"`
		ItemSuffix string `long:"item_suffix" description:"file containing lines emitted after each input's bytes"`
		ItemIndent string `long:"item_indent" description:"file containing the indent applied to each byte-literal line"`
		Commas     bool   `long:"comma" description:"append a trailing comma after every input but the last"`
		Args       struct {
			Inputs []string `positional-arg-name:"inputs" description:"files to embed"`
		} `positional-args:"true" required:"true"`
	} `command:"embed_binary_cstring" description:"embed one or more files as C string literals"`

	Args struct {
		Subdir string `positional-arg-name:"subdir" description:"project subdirectory to resolve (defaults to the current directory)"`
	} `positional-args:"true"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] [subdir]"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Verbose {
		logging.Log.Debug("verbose logging enabled")
	}

	if parser.Active != nil && parser.Active.Name == "embed_binary_cstring" {
		if err := runEmbed(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
		return
	}

	subdir := "."
	if opts.Args.Subdir != "" {
		subdir = opts.Args.Subdir
	}

	if err := resolveProject(subdir); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func runEmbed() error {
	e := opts.EmbedBinaryCString
	var out bytes.Buffer
	err := codegen.EmitCode(codegen.Options{
		Inputs:         e.Args.Inputs,
		FilePrefixFile: e.FilePrefix,
		FileSuffixFile: e.FileSuffix,
		ItemPrefixFile: e.ItemPrefix,
		ItemSuffixFile: e.ItemSuffix,
		ItemIndentFile: e.ItemIndent,
		DoCommas:       e.Commas,
		Output:         &out,
	})
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(e.Output); err == nil && bytes.Equal(existing, out.Bytes()) {
		return nil
	}
	if err := os.WriteFile(e.Output, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("embed_binary_cstring: write %s: %w", e.Output, err)
	}
	return nil
}
