package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the terminal
// without echo.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// parseAssignments turns "key=value" arguments into a JSON-ready patch for
// category c. Boolean members accept "on"/"true" and "off"/"false", and
// optional members accept "none"/"null" to clear them; every other value
// stays a string. Values may contain spaces when the argument was quoted by
// the REPL tokenizer.
func parseAssignments(c preferences.Category, args []string) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		patch[key] = parseValue(preferences.KindOf(c, key), value)
	}
	return patch, nil
}

func parseValue(kind preferences.FieldKind, v string) any {
	switch kind {
	case preferences.FieldBool:
		switch strings.ToLower(v) {
		case "on", "true":
			return true
		case "off", "false":
			return false
		}
	case preferences.FieldOptional:
		switch strings.ToLower(v) {
		case "none", "null":
			return nil
		}
	}
	return v
}

// splitArgs splits a command line on spaces, keeping double-quoted runs
// together: `profile firstName="Ann Marie"` yields two fields.
func splitArgs(line string) []string {
	var (
		fields  []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case (r == ' ' || r == '\t') && !quoted:
			if pending {
				fields = append(fields, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		fields = append(fields, cur.String())
	}
	return fields
}
