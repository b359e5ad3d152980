// Package console adapts the engine ports to a terminal and to bots.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInputClosed is returned when the input stream ends before a choice was made.
	ErrInputClosed = errors.New("input closed")
	// ErrNoOptions is returned when a selection is requested from an empty list.
	ErrNoOptions = errors.New("nothing to choose from")
)

const invalidSelection = "Selección inválida. Intenta nuevamente."

// maxAnswerLen bounds one answer line. Longer lines are discarded whole.
const maxAnswerLen = 1024

// Prompter asks the player through a line-oriented terminal. A choice is
// either the 1-based number shown in the menu or the exact name.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	yesToken string
}

// NewPrompter reads answers from in and writes menus to out. yesToken is the
// affirmative answer for confirmations, compared case-insensitively.
func NewPrompter(in io.Reader, out io.Writer, yesToken string) *Prompter {
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		yesToken: yesToken,
	}
}

func (p *Prompter) SelectDoctor(ctx context.Context, names []string) (string, error) {
	return p.choose(ctx, "Selecciona un doctor:", "Selecciona un doctor por número: ", names)
}

func (p *Prompter) SelectPatient(ctx context.Context, names []string) (string, error) {
	return p.choose(ctx, "Selecciona un paciente:", "Selecciona un paciente por número: ", names)
}

// ConfirmAction asks a yes/no question. Anything but the yes token is a no.
func (p *Prompter) ConfirmAction(ctx context.Context, label string) (bool, error) {
	answer, err := p.ask(ctx, fmt.Sprintf("¿Quieres proceder con %s? (%s/no): ", label, p.yesToken))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, p.yesToken), nil
}

func (p *Prompter) choose(ctx context.Context, header, question string, names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoOptions
	}

	fmt.Fprintln(p.out, header)
	for i, name := range names {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, name)
	}

	for {
		answer, err := p.ask(ctx, question)
		if err != nil {
			return "", err
		}
		if name, ok := resolve(answer, names); ok {
			return name, nil
		}
		fmt.Fprintln(p.out, invalidSelection)
	}
}

// ask prints question and reads one trimmed line, asking again when the line
// is too long. ctx is checked before each read; a read already blocked on the
// terminal is not interrupted.
func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(p.out, question)

		line, tooLong, err := p.readLine()
		if err != nil {
			return "", err
		}
		if tooLong {
			fmt.Fprintln(p.out, invalidSelection)
			continue
		}
		return strings.TrimSpace(line), nil
	}
}

// readLine consumes one line of input. A line over maxAnswerLen is read to
// its end and reported as tooLong. A final line without a newline still
// counts; ErrInputClosed means nothing was left to read.
func (p *Prompter) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	read := false
	for {
		chunk, isPrefix, rerr := p.in.ReadLine()
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				if read {
					return string(buf), tooLong, nil
				}
				return "", false, ErrInputClosed
			}
			return "", false, fmt.Errorf("read answer: %w", rerr)
		}
		read = true

		if !tooLong {
			if len(buf)+len(chunk) > maxAnswerLen {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func resolve(answer string, names []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(names) {
			return names[n-1], true
		}
		return "", false
	}
	for _, name := range names {
		if name == answer {
			return name, true
		}
	}
	return "", false
}
