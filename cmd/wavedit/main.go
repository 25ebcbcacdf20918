package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/config"
	"github.com/vsariola/wavedit/logutils"
	"github.com/vsariola/wavedit/meter"
	"github.com/vsariola/wavedit/oto"
	"github.com/vsariola/wavedit/recipe"
	"github.com/vsariola/wavedit/session"
	"github.com/vsariola/wavedit/version"
	"github.com/vsariola/wavedit/wav"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	ops := flag.String("ops", "", "Comma separated list of operations to apply in order. Possible values: "+operationList()+".")
	outPath := flag.String("o", "", "Output file. By default, the input file name with suffix _edited is used, placed in the configured output directory or the working directory.")
	rawOut := flag.Bool("r", false, "Output the edited audio as .raw file (interleaved 16-bit little-endian PCM) instead of .wav.")
	play := flag.Bool("p", false, "Play the edited audio.")
	info := flag.Bool("info", false, "Print the levels of the edited audio.")
	interactive := flag.Bool("i", false, "Start an interactive editing session.")
	recipeFile := flag.String("recipe", "", "Run the edits described in a recipe .yml file. Input files are not needed.")
	configFile := flag.String("c", "", "Configuration file. By default, wavedit.yml in the user config directory is used, if it exists.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Display())
		os.Exit(0)
	}
	if *help || (flag.NArg() == 0 && *recipeFile == "" && !*interactive) {
		flag.Usage()
		os.Exit(0)
	}
	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := logutils.New(cfg.LogOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if cfg.YmlError != nil {
		logger.Warn("ignoring user configuration", zap.Error(cfg.YmlError))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	newSession := func() *session.Session {
		s := session.New(logger)
		s.MaxUndo = cfg.History.MaxUndo
		s.VolumeFactor = cfg.Volume.Factor
		return s
	}
	if *recipeFile != "" {
		r, err := recipe.ReadFile(*recipeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read recipe: %v\n", err)
			os.Exit(1)
		}
		res, err := r.Run(newSession(), wav.Files{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not run recipe %v: %v\n", *recipeFile, err)
			os.Exit(1)
		}
		logger.Info("recipe finished", zap.String("output", r.Output), zap.Int("samples", res.Samples), zap.Int("skipped", res.Skipped))
		os.Exit(0)
	}
	if *interactive {
		m := newMenu(newSession(), wav.Files{}, os.Stdin, os.Stdout, logger)
		for _, name := range flag.Args() {
			m.load(name)
		}
		if err := m.run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "interactive session failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}
	operations, err := parseOperations(*ops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	var audioContext *oto.Context
	process := func(filename string) error {
		s := newSession()
		if err := s.Load(wav.Files{}, filename); err != nil {
			return err
		}
		for _, op := range operations {
			if err := s.Apply(op); err != nil {
				return err
			}
		}
		if *info {
			if err := meter.Report(os.Stdout, filepath.Base(filename), s.FrameRate(), meter.Measure(s.Audio())); err != nil {
				return err
			}
		}
		if len(operations) > 0 || *outPath != "" {
			if err := output(s, filename, *outPath, cfg.Output.Directory, *rawOut); err != nil {
				return err
			}
		}
		if *play {
			if audioContext == nil {
				var err error
				if audioContext, err = oto.NewContext(s.FrameRate()); err != nil {
					return err
				}
			}
			if err := audioContext.Play(ctx, s.FrameRate(), s.Audio()); err != nil {
				return fmt.Errorf("could not play: %w", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
			if errors.Is(err, context.Canceled) {
				break
			}
		}
	}
	os.Exit(retval)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

func parseOperations(list string) ([]wavedit.Operation, error) {
	var ret []wavedit.Operation
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		op, err := wavedit.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, op)
	}
	return ret, nil
}

func operationList() string {
	var names []string
	for _, op := range wavedit.Operations() {
		names = append(names, op.String())
	}
	return strings.Join(names, ", ")
}

// outputName picks the file the edited audio is written to.
func outputName(input, outPath, defaultDir string, raw bool) (string, error) {
	ext := ".wav"
	if raw {
		ext = ".raw"
	}
	if outPath != "" {
		// check if it's an already existing directory and the user just forgot trailing slash
		if info, err := os.Stat(outPath); err == nil && info.IsDir() {
			defaultDir = outPath
		} else {
			return outPath, nil
		}
	}
	dir := defaultDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
		}
	}
	_, name := filepath.Split(input)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "_edited" + ext
	return filepath.Join(dir, name), nil
}

func output(s *session.Session, input, outPath, defaultDir string, raw bool) error {
	f, err := outputName(input, outPath, defaultDir, raw)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
	}
	if raw {
		contents, err := wavedit.Raw(s.Audio())
		if err != nil {
			return fmt.Errorf("could not generate .raw file: %v", err)
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("%w %v: %v", wavedit.ErrSaveFailed, f, err)
		}
		return nil
	}
	return s.Save(wav.Files{}, f)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "wavedit edits stereo 16-bit .wav files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
