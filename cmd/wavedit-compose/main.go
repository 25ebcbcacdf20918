package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/config"
	"github.com/vsariola/wavedit/logutils"
	"github.com/vsariola/wavedit/midi"
	"github.com/vsariola/wavedit/oto"
	"github.com/vsariola/wavedit/version"
	"github.com/vsariola/wavedit/wav"
)

type options struct {
	dir     string
	midiOut bool
	play    bool
	// stdout receives raw PCM instead of writing files, if set.
	stdout   io.Writer
	audioCtx wavedit.AudioContext
}

func main() {
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	midiOut := flag.Bool("m", false, "Also export the script as a .mid file.")
	play := flag.Bool("p", false, "Play the composed audio.")
	stdout := flag.Bool("s", false, "Do not write files; write the audio to standard output instead, as headerless interleaved 16-bit little-endian PCM at 2000 Hz.")
	watch := flag.Bool("watch", false, "Keep running and compose again whenever a script changes.")
	configFile := flag.String("c", "", "Configuration file. By default, wavedit.yml in the user config directory is used, if it exists.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Display())
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	cfg := config.Load()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
			os.Exit(1)
		}
	}
	logger, err := logutils.New(cfg.LogOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	opts := options{dir: *directory, midiOut: *midiOut, play: *play}
	if *stdout {
		opts.stdout = os.Stdout
	}
	if opts.dir == "" {
		opts.dir = cfg.Output.Directory
	}
	if opts.play {
		c, err := oto.NewContext(wavedit.SampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		opts.audioCtx = c
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	retval := 0
	for _, param := range flag.Args() {
		if err := compose(ctx, param, opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "could not compose %v: %v\n", param, err)
			retval = 1
		}
	}
	if *watch {
		if err := watchScripts(ctx, flag.Args(), opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "watching failed: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(retval)
}

func outputPath(dir, script, extension string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
		}
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("could not create output directory %v: %v", dir, err)
	}
	_, name := filepath.Split(script)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
	return filepath.Join(dir, name), nil
}

func compose(ctx context.Context, script string, opts options, logger *zap.Logger) error {
	text, err := wav.Files{}.ReadScript(script)
	if err != nil {
		return fmt.Errorf("%w: %v", wavedit.ErrReadFailed, err)
	}
	directions, err := wavedit.ParseScript(text)
	if err != nil {
		return err
	}
	audio, skipped := wavedit.Synthesize(directions)
	if skipped > 0 {
		logger.Warn("skipped notes with unknown symbols", zap.String("script", script), zap.Int("skipped", skipped))
	}
	if opts.stdout != nil {
		raw, err := wavedit.Raw(audio)
		if err != nil {
			return err
		}
		_, err = opts.stdout.Write(raw)
		return err
	}
	wavPath, err := outputPath(opts.dir, script, ".wav")
	if err != nil {
		return err
	}
	if err := (wav.Files{}).Write(wavPath, wavedit.SampleRate, audio); err != nil {
		return fmt.Errorf("%w %v: %v", wavedit.ErrSaveFailed, wavPath, err)
	}
	logger.Info("composed", zap.String("script", script), zap.String("output", wavPath), zap.Int("notes", len(directions)), zap.Int("samples", len(audio)))
	if opts.midiOut {
		midiPath, err := outputPath(opts.dir, script, ".mid")
		if err != nil {
			return err
		}
		if err := writeMidi(midiPath, directions); err != nil {
			return err
		}
		logger.Info("exported midi", zap.String("output", midiPath))
	}
	if opts.audioCtx != nil {
		if err := opts.audioCtx.Play(ctx, wavedit.SampleRate, audio); err != nil && ctx.Err() == nil {
			return fmt.Errorf("could not play: %w", err)
		}
	}
	return nil
}

func writeMidi(path string, directions []wavedit.NoteDirection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %v: %v", wavedit.ErrSaveFailed, path, err)
	}
	if err := midi.Export(f, directions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// watchScripts composes a script again every time it is written. Directories
// are watched instead of the files, because editors often replace files
// instead of writing them in place.
func watchScripts(ctx context.Context, scripts []string, opts options, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	watched := map[string]bool{}
	for _, s := range scripts {
		abs, err := filepath.Abs(s)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("could not watch %v: %w", s, err)
		}
	}
	logger.Info("watching scripts", zap.Strings("scripts", scripts))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := compose(ctx, event.Name, opts, logger); err != nil {
				logger.Error("could not compose", zap.String("script", event.Name), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "wavedit-compose renders note scripts (e.g. \"A 16 Q 4 C 8\") to .wav files.\nUsage: %s [flags] [script ...]\n", os.Args[0])
	flag.PrintDefaults()
}
