package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Stdio реализует IO поверх stdin/stdout
type Stdio struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
	mu     sync.Mutex
}

func NewStdio() IO {
	return NewFileIO(os.Stdin, os.Stdout)
}

// NewFileIO создает IO поверх произвольного файла ввода и writer вывода
func NewFileIO(in *os.File, out io.Writer) *Stdio {
	return &Stdio{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	if prompt != "" {
		s.Printf("%s", prompt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	input, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает пароль без эха, если ввод это терминал.
// Иначе (pipe, файл) читает обычную строку.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
