// Command rewritelinks rewrites wikilinks in an HTML file in place so they
// open through the local cablecat jump CGI.
//
//	rewritelinks [--wikim-socket S --wikim-selector-pane P --wikim-main-pane P] FILE
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/CrestNiraj12/lemmyterm/infra/config"
	"github.com/CrestNiraj12/lemmyterm/infra/wikilinks"
)

type cliArgs struct {
	file         string
	socket       string
	selectorPane string
	mainPane     string
}

// parseArgs accepts flags before or after the file argument.
func parseArgs(args []string, stderr io.Writer) (cliArgs, error) {
	var out cliArgs
	fs := flag.NewFlagSet("rewritelinks", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&out.socket, "wikim-socket", "", "tmux socket path for wikim mode")
	fs.StringVar(&out.selectorPane, "wikim-selector-pane", "", "selector pane ID for wikim mode")
	fs.StringVar(&out.mainPane, "wikim-main-pane", "", "main pane ID for wikim mode")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return cliArgs{}, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	if len(positional) != 1 {
		return cliArgs{}, errors.New("usage: rewritelinks [--wikim-socket S] [--wikim-selector-pane P] [--wikim-main-pane P] FILE")
	}
	out.file = positional[0]
	return out, nil
}

func rewriteFile(path string, opts wikilinks.Options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if _, err := wikilinks.Rewrite(bytes.NewReader(src), &out, opts); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out.Bytes(), info.Mode().Perm())
}

func run(args []string, stderr io.Writer) int {
	a, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if _, err := os.Stat(a.file); err != nil {
		return 1
	}

	port, err := config.LoadPort()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	opts := wikilinks.Options{
		Port:         port,
		Socket:       a.socket,
		SelectorPane: a.selectorPane,
		MainPane:     a.mainPane,
	}
	if err := rewriteFile(a.file, opts); err != nil {
		fmt.Fprintf(stderr, "Error rewriting links: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stderr))
}
