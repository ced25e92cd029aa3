package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword reads from the terminal without echo; tests replace it.
var readPassword = term.ReadPassword

// GetSimpleText writes "prompt: " to w and returns the next line of reader
// with surrounding whitespace removed. A final line without a newline is
// still returned; EOF before any input is an error.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword asks for the password of user and reads it from stdin with
// echo disabled. The caller wipes the returned slice.
func GetPassword(w io.Writer, user string) ([]byte, error) {
	if _, err := fmt.Fprintf(w, "Password for %s: ", user); err != nil {
		return nil, err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
