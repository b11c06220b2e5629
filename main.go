package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fatih/color"

	"github.com/shirerpeton/castCondenser/internal/common"
	"github.com/shirerpeton/castCondenser/internal/condenser"
)

const castExtension = ".cast"
const condensedSuffix = "_condensed" + castExtension

func printStats(files []*common.CondenseFile, dry bool) {
	for _, file := range files {
		percent := 100.0
		if file.OriginalDuration > 0 {
			percent = (float64(file.CondensedDuration) / float64(file.OriginalDuration)) * 100
		}
		color.Set(color.FgYellow)
		fmt.Print("input: ")
		color.Set(color.FgGreen)
		fmt.Printf("%s\n", file.Input)
		color.Set(color.FgYellow)
		fmt.Print("frames: ")
		color.Set(color.FgGreen)
		fmt.Printf("%d of %d lines\n", file.Frames, file.Lines)
		color.Set(color.FgYellow)
		fmt.Print("duration: ")
		color.Set(color.FgGreen)
		fmt.Printf("%v\n", file.OriginalDuration)
		if !dry {
			color.Set(color.FgYellow)
			fmt.Print("output: ")
			color.Set(color.FgMagenta)
			fmt.Printf("%s\n", file.Output)
		}
		color.Set(color.FgYellow)
		fmt.Print("clamped gaps: ")
		color.Set(color.FgMagenta)
		fmt.Printf("%d\n", file.Clamped)
		color.Set(color.FgYellow)
		fmt.Print("condensed duration: ")
		color.Set(color.FgMagenta)
		fmt.Printf("%v (%.1f%%)\n", file.CondensedDuration, percent)
		color.Unset()
		fmt.Println()
	}
}

func getOutputPath(input string) string {
	result := strings.TrimSuffix(input, filepath.Ext(input))
	return result + condensedSuffix
}

func getFiles(input string, output string, isDir bool) ([]*common.CondenseFile, error) {
	files := make([]*common.CondenseFile, 0)

	if !isDir {
		file := &common.CondenseFile{Input: input}
		if output != "" {
			file.Output = output
		} else {
			file.Output = getOutputPath(file.Input)
		}
		return append(files, file), nil
	}

	outputFolder := output
	if outputFolder == "" {
		outputFolder = "./output/"
	}
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	for _, entr := range entries {
		if entr.IsDir() || filepath.Ext(entr.Name()) != castExtension {
			continue
		}
		// output of an earlier run into the same directory
		if strings.HasSuffix(entr.Name(), condensedSuffix) {
			continue
		}
		files = append(files, &common.CondenseFile{
			Input: filepath.Join(input, entr.Name()),
			Output: filepath.Join(outputFolder, getOutputPath(entr.Name())),
		})
	}
	if len(files) == 0 {
		return nil, errors.New("no input recordings")
	}
	return files, nil
}

func main() {
	input := flag.String("input", "", "Path to input .cast recording or directory containing them")
	output := flag.String("out", "", "Path to output recording, defaults to input filename with _condensed suffix, for directory processing must be a directory name as well")
	maxDelay := flag.Float64("delay", condenser.DefaultMaxDelay, "Maximum allowed delay between frames (in seconds, decimal)")
	dry := flag.Bool("dry", false, "Only calculate and print stats, don't write condensed recordings")
	flag.Parse()

	if *input == "" {
		fmt.Println("Provide input recording path")
		os.Exit(1)
	}

	if *maxDelay <= 0 {
		fmt.Println("Max delay must be > 0")
		os.Exit(1)
	}

	inputStat, err := os.Stat(*input)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	files, err := getFiles(*input, *output, inputStat.IsDir())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var g errgroup.Group

	for _, file := range files {
		g.Go(func() error {
			if *dry {
				return condenser.Analyze(file, *maxDelay)
			}
			return condenser.ProcessFile(file, *maxDelay)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Println("Error processing files", err)
		os.Exit(1)
	}

	printStats(files, *dry)
}
