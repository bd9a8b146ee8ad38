package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/jrsteele09/go-summary-client/routes"
)

// userMessage turns any command error into the one line shown to the user.
func userMessage(err error) string {
	var authErr *apperrors.AuthenticationError
	var upErr *apperrors.UpstreamError
	switch {
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.Is(err, apperrors.ErrTokenExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return routes.NotAuthorizedMessage
	case errors.As(err, &upErr):
		return upErr.Error()
	}
	return err.Error()
}

// prompt asks for a value on out and reads one line from in.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
