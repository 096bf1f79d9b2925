package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

type line struct {
	text string
	err  error
}

// Input reads one answer per line. Reads happen on a background goroutine
// so a pending read can be abandoned when the context is cancelled.
type Input struct {
	out   io.Writer
	lines chan line

	stop      chan struct{}
	stopOnce  sync.Once
	scanEnded chan struct{}
}

var _ quiz.InputSource = (*Input)(nil)

// NewInput reads answers from in and writes the input prompt to out.
func NewInput(in io.Reader, out io.Writer) *Input {
	i := &Input{
		out:       out,
		lines:     make(chan line),
		stop:      make(chan struct{}),
		scanEnded: make(chan struct{}),
	}
	go i.scan(bufio.NewScanner(in))
	return i
}

// Close stops delivering lines. A read already blocked on the underlying
// reader ends when that reader returns.
func (i *Input) Close() error {
	i.stopOnce.Do(func() { close(i.stop) })
	return nil
}

func (i *Input) scan(sc *bufio.Scanner) {
	defer close(i.scanEnded)
	defer close(i.lines)

	for sc.Scan() {
		if !i.send(line{text: sc.Text()}) {
			return
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	i.send(line{err: err})
}

func (i *Input) send(l line) bool {
	select {
	case i.lines <- l:
		return true
	case <-i.stop:
		return false
	}
}

// ReadAnswer prints a prompt marker and waits for the next line.
// It returns io.EOF once input is exhausted.
func (i *Input) ReadAnswer(ctx context.Context, q quiz.Question) (string, error) {
	marker := "> "
	if q.Format == quiz.FormatMultipleChoice {
		marker = fmt.Sprintf("[1-%d] > ", len(q.Choices))
	}
	fmt.Fprint(i.out, theme.Hint.Render(marker))

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-i.stop:
		return "", io.EOF
	case l, ok := <-i.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return trimInput(l.text), nil
	}
}
