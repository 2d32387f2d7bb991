package forms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads form fields line by line. Passwords are read without echo
// when the input is a terminal.
type Prompter struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

// NewPrompter creates a Prompter reading from in and writing labels to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(p.out)
			return string(b), err
		}
	}
	return p
}

// Line prints label and returns the next input line without its line ending.
// io.EOF is returned only when no input is left at all.
func (p *Prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Password prints label and reads a secret.
func (p *Prompter) Password(label string) (string, error) {
	if p.readPassword == nil {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	return p.readPassword()
}

// SignIn prompts for the sign-in form.
func (p *Prompter) SignIn() (SignIn, error) {
	var f SignIn
	var err error
	if f.Email, err = p.Line("Email Address: "); err != nil {
		return f, err
	}
	if f.Password, err = p.Password("Password: "); err != nil {
		return f, err
	}
	return f, nil
}

// SignUp prompts for the sign-up form.
func (p *Prompter) SignUp() (SignUp, error) {
	var f SignUp
	var err error
	if f.FirstName, err = p.Line("First Name: "); err != nil {
		return f, err
	}
	if f.LastName, err = p.Line("Last Name: "); err != nil {
		return f, err
	}
	if f.Email, err = p.Line("Email Address: "); err != nil {
		return f, err
	}
	if f.Password, err = p.Password("Password: "); err != nil {
		return f, err
	}
	if f.ConfirmPassword, err = p.Password("Confirm Password: "); err != nil {
		return f, err
	}
	return f, nil
}
