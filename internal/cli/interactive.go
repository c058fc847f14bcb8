package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/internal/graph"
	"github.com/dyike/CortexFin/internal/memory"
	"github.com/dyike/CortexFin/pkg/logger"
)

// TurnRunner runs one user turn against a session.
type TurnRunner interface {
	Run(ctx context.Context, sess *memory.Session, query string) (*graph.TurnResult, error)
}

// InteractiveSession is the chat REPL. It owns the conversation memory for
// its lifetime.
type InteractiveSession struct {
	runner  TurnRunner
	session *memory.Session
	reader  *bufio.Reader
	out     io.Writer
	confirm func(message string) (bool, error)
	log     *logger.Logger
}

func NewInteractiveSession(runner TurnRunner, in io.Reader, out io.Writer) *InteractiveSession {
	return &InteractiveSession{
		runner:  runner,
		session: memory.NewSession(),
		reader:  bufio.NewReader(in),
		out:     out,
		confirm: confirmPrompt,
		log:     logger.Named("cli"),
	}
}

// Start prints the banner and loops until exit, EOF or ctx is done.
func (s *InteractiveSession) Start(ctx context.Context) error {
	fmt.Fprintln(s.out, titleStyle.Render(consts.Banner))
	fmt.Fprintln(s.out, hintStyle.Render(consts.ExitHint))

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, consts.Goodbye)
			return nil
		}
		fmt.Fprint(s.out, promptStyle.Render(consts.PromptPrefix))

		line, err := s.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		input := strings.TrimSpace(line)
		switch {
		case input == "":
		case exitCommand(input):
			fmt.Fprintln(s.out, consts.Goodbye)
			return nil
		case input == "/reset":
			s.reset()
		case input == "/memory":
			s.showMemory()
		default:
			s.ask(ctx, input)
		}

		if eof {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, consts.Goodbye)
			return nil
		}
	}
}

func (s *InteractiveSession) ask(ctx context.Context, input string) {
	res, err := s.runner.Run(ctx, s.session, input)
	if err != nil {
		s.log.Errorw("turn failed", "error", err)
	}
	if res == nil {
		fmt.Fprintln(s.out, errorStyle.Render(consts.NoState))
		return
	}
	fmt.Fprintln(s.out, renderAnswer(res.Output))
}

func (s *InteractiveSession) reset() {
	ok, err := s.confirm("确定要清空对话记忆吗？")
	if err != nil {
		fmt.Fprintln(s.out, errorStyle.Render(err.Error()))
		return
	}
	if !ok {
		return
	}
	s.session.Clear()
	fmt.Fprintln(s.out, hintStyle.Render("对话记忆已清空。"))
}

func (s *InteractiveSession) showMemory() {
	if s.session.Len() == 0 {
		fmt.Fprintln(s.out, hintStyle.Render("暂无对话记录。"))
		return
	}
	fmt.Fprintln(s.out, renderSessionHeader(s.session.ID(), s.session.CreatedAt()))
	fmt.Fprint(s.out, s.session.Transcript())
}
