// Command sheetpulser reads exported dashboard sheets and renders
// summaries, breakdowns and reconciled holdings in the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/cmd"
)

// completion describes the CLI for shell completion. Complete returns
// immediately unless invoked by the shell's completion hook.
func completion() {
	focus := predict.Set{"month", "quarter", "year", "rolling", "all"}
	direction := predict.Set{"expense", "income"}
	spec := &complete.Command{
		Flags: map[string]complete.Predictor{
			"sheet-dir":  predict.Dirs("*"),
			"currency":   predict.Nothing,
			"rates-file": predict.Files("*.xml"),
			"v":          predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"focus": focus}},
			"breakdown": {Flags: map[string]complete.Predictor{
				"focus":    focus,
				"dir":      direction,
				"category": predict.Nothing,
			}},
			"variance": {Flags: map[string]complete.Predictor{
				"focus":         focus,
				"dir":           direction,
				"discretionary": predict.Nothing,
			}},
			"holdings": {Flags: map[string]complete.Predictor{
				"quotes":      predict.Files("*.json"),
				"quotes-path": predict.Nothing,
				"symbol-key":  predict.Nothing,
				"price-key":   predict.Nothing,
				"quote-ttl":   predict.Nothing,
				"movers":      predict.Nothing,
			}},
			"suggest": {Flags: map[string]complete.Predictor{
				"model": predict.Nothing,
			}},
			"export": {Flags: map[string]complete.Predictor{
				"focus": focus,
				"o":     predict.Files("*.jsonl"),
			}},
		},
	}
	spec.Complete(path.Base(os.Args[0]))
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
