package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrInputClosed is returned once stdin is exhausted.
var ErrInputClosed = errors.New("console: input closed")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *prompter) readLine(prompt string) (string, error) {
	p.printf("%s", prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// readInt re-prompts until the line holds an integer.
func (p *prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return v, nil
		}
		p.println("Invalid input. Please enter a number.")
	}
}

// readAmount re-prompts until the line holds a non-negative number.
func (p *prompter) readAmount(prompt string) (float64, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err == nil && v >= 0 && !math.IsInf(v, 0) {
			return v, nil
		}
		p.println("Invalid input. Please enter a positive number.")
	}
}

// confirm reports whether the first non-blank character is y or Y.
func (p *prompter) confirm(prompt string) (bool, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return false, err
	}
	line = strings.TrimSpace(line)
	return line != "" && (line[0] == 'y' || line[0] == 'Y'), nil
}
