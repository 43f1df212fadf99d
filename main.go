// main.go - entry point for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	var (
		debug bool
		quiet bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.BoolVar(&debug, "debug", false, "Enable debug logging")
	flagSet.BoolVar(&quiet, "quiet", false, "Log errors only")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: zest [-debug|-quiet] [path]")
		fmt.Println("Runs the game found at `path` (default: current directory).")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if debug {
		SetLogLevel(LogDebug)
	} else if quiet {
		SetLogLevel(LogError)
	}

	basePath := flagSet.Arg(0)
	if basePath == "" {
		basePath = "."
	}

	engine, err := NewEngine(basePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	engine.Run()
	engine.Terminate()
}
