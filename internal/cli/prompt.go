package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/claudia-app/claudia-vault/internal/crypto"
)

var errPasswordMismatch = errors.New("passwords do not match")

// Prompter reads master passwords from the user.
type Prompter interface {
	ReadPassword(prompt string) ([]byte, error)
}

type termPrompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompter reads without echo when in is a terminal and falls back to
// line reads otherwise, so passwords can be piped in scripts.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	return &termPrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *termPrompter) ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return pw, nil
	}

	line, err := p.reader.ReadBytes('\n')
	if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// readNewPassword asks for a password twice and returns it when both
// entries match.
func readNewPassword(p Prompter, prompt string) ([]byte, error) {
	pw, err := p.ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := p.ReadPassword("Repeat " + prompt)
	if err != nil {
		crypto.Wipe(pw)
		return nil, err
	}
	defer crypto.Wipe(confirm)

	if !bytes.Equal(pw, confirm) {
		crypto.Wipe(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}
