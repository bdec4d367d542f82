package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	scheme "github.com/Feyerabend/bb-sub002"
)

const (
	appName     = "sch"
	historyFile = ".sch_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("sch %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", scheme.Version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(scheme.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`sch %s

Usage:
  %s run <file.scm>    Evaluate a file of expressions.
  %s repl              Start the interactive REPL.
  %s version           Print the version.

`, scheme.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.scm>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	forms, err := scheme.ReadAll(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	global := scheme.NewEnv(nil)
	for _, form := range forms {
		if _, err := scheme.Eval(form, global); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	global := scheme.NewEnv(nil)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		forms, err := scheme.ReadAll(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}

		for _, form := range forms {
			v, err := scheme.Eval(form, global)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				break
			}
			fmt.Println(scheme.Format(v))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe collects lines until the reader no longer reports
// the input as incomplete, so multi-line forms can be typed naturally.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := scheme.ReadAll(src); perr == nil || !scheme.IsIncomplete(perr) {
			return src, true
		}
	}
}
