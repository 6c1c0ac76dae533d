// Command hanjie solves a nonogram puzzle definition from the command
// line and renders the result as text or PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/klofan/hanjie-server/internal/hanjie"
	"github.com/klofan/hanjie-server/internal/render"
)

var log = logrus.New()

var (
	inputPath  string
	outputPath string
	scale      int
	workers    int
	maxPasses  int
	verbose    bool
	logPath    string
)

func init() {
	flag.StringVar(&inputPath, "f", "", "puzzle definition JSON (default: built-in demo)")
	flag.StringVar(&outputPath, "o", "", "write the solved grid as PNG to this path")
	flag.IntVar(&scale, "scale", 10, "pixels per cell in PNG output")
	flag.IntVar(&workers, "workers", 0, "probe lines concurrently with this many workers")
	flag.IntVar(&maxPasses, "passes", 0, "cap the number of fixpoint passes (0 = unlimited)")
	flag.BoolVar(&verbose, "v", false, "log per-pass progress")
	flag.StringVar(&logPath, "log", "", "also log to this file (rotated)")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logPath != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to set up log file: ", err)
		}
		log.AddHook(hook)
	}
}

func loadDefinition() hanjie.Definition {
	if inputPath == "" {
		log.Debug("no input file, solving the built-in demo puzzle")
		return hanjie.Demo()
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal("unable to read puzzle file: ", err)
	}
	def, err := hanjie.ParseDefinition(data)
	if err != nil {
		log.Fatal("unable to parse puzzle file: ", err)
	}
	return def
}

func main() {
	flag.Parse()
	setupLogging()

	puzzle := hanjie.NewPuzzle(loadDefinition())
	log.Debugf("loaded %dx%d puzzle", puzzle.Width(), puzzle.Height())

	err := puzzle.SolveWith(context.Background(), hanjie.SolveOptions{
		Workers:   workers,
		MaxPasses: maxPasses,
		Progress: func(pass hanjie.Pass) {
			log.WithFields(logrus.Fields{
				"pass":     pass.Number,
				"probed":   pass.Probed,
				"deduced":  pass.Deduced,
				"unknowns": pass.Unknowns,
			}).Debug("pass complete")
		},
	})
	switch {
	case errors.Is(err, hanjie.ErrInconsistent):
		log.Error(err)
		log.Fatal("puzzle has no solution")
	case errors.Is(err, hanjie.ErrPassLimit):
		log.Warn("pass limit reached, grid may be incomplete")
	case err != nil:
		log.Fatal(err)
	}

	if n := puzzle.Unknowns(); n > 0 {
		log.Warnf("%d cells remain ambiguous under single-line deduction", n)
	}

	fmt.Print(render.Text(puzzle))

	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatal("unable to create output file: ", err)
		}
		defer f.Close()
		if err := render.PNG(f, puzzle, scale); err != nil {
			log.Fatal("unable to render PNG: ", err)
		}
		log.Info("wrote ", outputPath)
	}
}
