package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/meter"
	"github.com/vsariola/wavedit/oto"
	"github.com/vsariola/wavedit/recipe"
	"github.com/vsariola/wavedit/session"
)

type command int

const (
	cmdOperation command = iota
	cmdLoad
	cmdCompose
	cmdSave
	cmdUndo
	cmdRedo
	cmdPlay
	cmdInfo
	cmdHelp
	cmdQuit
)

var commandKeys = map[string]command{
	"l": cmdLoad,
	"c": cmdCompose,
	"s": cmdSave,
	"u": cmdUndo,
	"r": cmdRedo,
	"p": cmdPlay,
	"i": cmdInfo,
	"h": cmdHelp,
	"?": cmdHelp,
	"q": cmdQuit,
}

// menu is the interactive editing session. Commands are read line by line;
// prompts are only printed when the input is a terminal.
type menu struct {
	session   *session.Session
	files     recipe.Files
	in        *bufio.Scanner
	out       io.Writer
	prompt    bool
	logger    *zap.Logger
	player    wavedit.AudioContext
	newPlayer func(frameRate int) (wavedit.AudioContext, error)
}

func newMenu(s *session.Session, files recipe.Files, in io.Reader, out io.Writer, logger *zap.Logger) *menu {
	prompt := false
	if f, ok := in.(*os.File); ok {
		prompt = term.IsTerminal(int(f.Fd()))
	}
	m := &menu{
		session: s,
		files:   files,
		in:      bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
		logger:  logger,
	}
	m.newPlayer = func(frameRate int) (wavedit.AudioContext, error) {
		return oto.NewContext(frameRate)
	}
	return m
}

func (m *menu) printHelp() {
	fmt.Fprintln(m.out, "Operations:")
	for _, op := range wavedit.Operations() {
		fmt.Fprintf(m.out, "  %d  %s\n", int(op)+1, op.Title())
	}
	fmt.Fprintln(m.out, "Commands:")
	fmt.Fprintln(m.out, "  l <file>  load a .wav file")
	fmt.Fprintln(m.out, "  c <file>  compose a note script")
	fmt.Fprintln(m.out, "  s <file>  save as .wav")
	fmt.Fprintln(m.out, "  u / r     undo / redo")
	fmt.Fprintln(m.out, "  p         play; the audio device keeps the frame rate of the first")
	fmt.Fprintln(m.out, "            playback until wavedit exits")
	fmt.Fprintln(m.out, "  i         show levels")
	fmt.Fprintln(m.out, "  h         help")
	fmt.Fprintln(m.out, "  q         quit")
}

func parseCommand(line string) (cmd command, op wavedit.Operation, arg string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, 0, "", errors.New("empty command")
	}
	arg = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	if n, err := strconv.Atoi(fields[0]); err == nil {
		if n < 1 || n > int(wavedit.NumOperations) {
			return 0, 0, "", fmt.Errorf("no operation %d", n)
		}
		return cmdOperation, wavedit.Operation(n - 1), arg, nil
	}
	if c, ok := commandKeys[strings.ToLower(fields[0])]; ok {
		return c, 0, arg, nil
	}
	if op, err := wavedit.ParseOperation(line); err == nil {
		return cmdOperation, op, "", nil
	}
	return 0, 0, "", fmt.Errorf("unknown command %q, type h for help", fields[0])
}

func (m *menu) load(name string) {
	if err := m.session.Load(m.files, name); err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	m.status()
}

func (m *menu) status() {
	var history []string
	if m.session.CanUndo() {
		history = append(history, "u: undo")
	}
	if m.session.CanRedo() {
		history = append(history, "r: redo")
	}
	fmt.Fprintf(m.out, "%d samples at %d Hz", m.session.Len(), m.session.FrameRate())
	if len(history) > 0 {
		fmt.Fprintf(m.out, " (%s)", strings.Join(history, ", "))
	}
	fmt.Fprintln(m.out)
}

// run reads commands until quit, end of input or cancellation. Failed commands
// are reported and the session keeps its previous state.
func (m *menu) run(ctx context.Context) error {
	defer func() {
		if m.player != nil {
			m.player.Close()
		}
	}()
	if m.prompt {
		m.printHelp()
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		if m.prompt {
			fmt.Fprint(m.out, "> ")
		}
		if !m.in.Scan() {
			return m.in.Err()
		}
		line := strings.TrimSpace(m.in.Text())
		if line == "" {
			continue
		}
		cmd, op, arg, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(m.out, err)
			continue
		}
		if cmd == cmdQuit {
			return nil
		}
		m.do(ctx, cmd, op, arg)
	}
}

func (m *menu) do(ctx context.Context, cmd command, op wavedit.Operation, arg string) {
	needsArg := func() bool {
		if arg == "" {
			fmt.Fprintln(m.out, "missing file name")
			return false
		}
		return true
	}
	switch cmd {
	case cmdOperation:
		if err := m.session.Apply(op); err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		m.status()
	case cmdLoad:
		if needsArg() {
			m.load(arg)
		}
	case cmdCompose:
		if !needsArg() {
			return
		}
		skipped, err := m.session.Compose(m.files, arg)
		if err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		if skipped > 0 {
			fmt.Fprintf(m.out, "skipped %d notes with unknown symbols\n", skipped)
		}
		m.status()
	case cmdSave:
		if !needsArg() {
			return
		}
		if err := m.session.Save(m.files, arg); err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		fmt.Fprintf(m.out, "saved %v\n", arg)
	case cmdUndo:
		if !m.session.Undo() {
			fmt.Fprintln(m.out, "nothing to undo")
			return
		}
		m.status()
	case cmdRedo:
		if !m.session.Redo() {
			fmt.Fprintln(m.out, "nothing to redo")
			return
		}
		m.status()
	case cmdPlay:
		if err := m.play(ctx); err != nil {
			fmt.Fprintln(m.out, err)
		}
	case cmdInfo:
		if !m.session.Loaded() {
			fmt.Fprintln(m.out, session.ErrNoAudio)
			return
		}
		if err := meter.Report(m.out, "levels", m.session.FrameRate(), meter.Measure(m.session.Audio())); err != nil {
			fmt.Fprintln(m.out, err)
		}
	case cmdHelp:
		m.printHelp()
	}
}

func (m *menu) play(ctx context.Context) error {
	if !m.session.Loaded() {
		return session.ErrNoAudio
	}
	if m.player == nil {
		p, err := m.newPlayer(m.session.FrameRate())
		if err != nil {
			return err
		}
		m.player = p
	}
	if rate := m.player.FrameRate(); rate != m.session.FrameRate() {
		return fmt.Errorf("audio device is open at %d Hz until wavedit exits, cannot play %d Hz audio; save it and play it in a new session", rate, m.session.FrameRate())
	}
	err := m.player.Play(ctx, m.session.FrameRate(), m.session.Audio())
	if err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("playback failed", zap.Error(err))
		return err
	}
	return nil
}
