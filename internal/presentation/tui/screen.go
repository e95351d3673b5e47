package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/infoboard/internal/logging"
	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/muesli/termenv"
)

// DefaultErrorDisplay is how long an error stays on screen before it is dismissed.
const DefaultErrorDisplay = 3 * time.Second

// Board is the view model surface the screen drives.
type Board interface {
	AcceptIntent(presentation.Intent)
	Subscribe(ctx context.Context) <-chan presentation.UIState
}

// Screen renders states to a terminal and turns input lines into intents.
type Screen struct {
	in           io.Reader
	out          io.Writer
	output       *termenv.Output
	render       Renderer
	errorDisplay time.Duration
	clear        bool
	logger       *slog.Logger
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithRenderer overrides the markdown renderer.
func WithRenderer(r Renderer) ScreenOption {
	return func(s *Screen) {
		s.render = r
	}
}

// WithErrorDisplay sets how long errors are shown. Zero keeps them until dismissed.
func WithErrorDisplay(d time.Duration) ScreenOption {
	return func(s *Screen) {
		s.errorDisplay = d
	}
}

// WithLogger configures a logger for the screen.
func WithLogger(logger *slog.Logger) ScreenOption {
	return func(s *Screen) {
		s.logger = logger
	}
}

// NewScreen creates a screen reading commands from in and drawing to out.
func NewScreen(in io.Reader, out io.Writer, opts ...ScreenOption) *Screen {
	s := &Screen{
		in:           in,
		out:          out,
		output:       termenv.NewOutput(out),
		errorDisplay: DefaultErrorDisplay,
		clear:        IsTerminal(out),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.render == nil {
		s.render = NewRenderer(out)
	}
	return s
}

// Run draws every state published by board until ctx ends or the user quits.
// Input lines are "r" to refresh, "d" to dismiss the error and "q" to quit.
// When input ends the screen keeps rendering until ctx ends.
func (s *Screen) Run(ctx context.Context, board Board) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := board.Subscribe(ctx)
	lines := s.pump(ctx)

	var (
		dismiss   *time.Timer
		expired   <-chan time.Time
		lastError string
	)
	stopTimer := func() {
		if dismiss != nil {
			dismiss.Stop()
		}
		dismiss, expired = nil, nil
	}
	defer stopTimer()

	s.help()

	for {
		select {
		case <-ctx.Done():
			return nil

		case state, ok := <-states:
			if !ok {
				return nil
			}
			s.draw(state)

			// Each new message gets the full display time.
			if state.ErrorMessage != lastError {
				stopTimer()
				if state.HasError() && s.errorDisplay > 0 {
					dismiss = time.NewTimer(s.errorDisplay)
					expired = dismiss.C
				}
			}
			lastError = state.ErrorMessage

		case <-expired:
			stopTimer()
			s.logger.Debug("Dismissing error after display timeout")
			board.AcceptIntent(presentation.HideErrorMessage{})

		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if quit := s.handle(board, line); quit {
				return nil
			}
		}
	}
}

func (s *Screen) handle(board Board, line string) (quit bool) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		s.help()
		return false
	}

	intent, err := presentation.ParseIntent(cmd)
	if err != nil {
		s.warn(err.Error())
		return false
	}
	s.logger.Debug("Intent from input", "intent", intent.Name())
	board.AcceptIntent(intent)
	return false
}

func (s *Screen) draw(state presentation.UIState) {
	md := Markdown(state)
	out, err := s.render(md)
	if err != nil {
		s.logger.Warn("Render failed, falling back to plain text", "err", err)
		out = md
	}

	if s.clear {
		s.output.ClearScreen()
	}
	fmt.Fprintln(s.out, strings.TrimSpace(out))
	if state.HasError() {
		s.warn(state.ErrorMessage)
	}
}

func (s *Screen) warn(msg string) {
	fmt.Fprintln(s.out, s.output.String("! "+msg).Foreground(s.output.Color("#fb7185")).Bold())
}

func (s *Screen) help() {
	fmt.Fprintln(s.out, s.output.String("[r] refresh  [d] dismiss error  [q] quit").Faint())
}

// pump forwards input lines until the reader ends or ctx is done.
func (s *Screen) pump(ctx context.Context) <-chan string {
	lines := make(chan string)
	if s.in == nil {
		close(lines)
		return lines
	}

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.logger.Warn("Input read failed", "err", err)
		}
	}()
	return lines
}
