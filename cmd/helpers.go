package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !errors.Is(err, fs.ErrNotExist)
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(w io.Writer, resourceType, createCmd string) {
	_, _ = fmt.Fprintf(w, "No %s yet.\n", resourceType)
	_, _ = fmt.Fprintf(w, "Create one with: %s\n", createCmd)
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	padding := (width - n) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-n-padding, "")
}

// truncateString truncates a string to maxLen runes with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printInfoBox prints a complete info box with title and key-value pairs
func printInfoBox(w io.Writer, title string, items map[string]string, order []string) {
	_, _ = fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	_, _ = fmt.Fprintf(w, "║%s║\n", centerString(title, boxWidth-2))
	_, _ = fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")

	for _, key := range order {
		val, ok := items[key]
		if !ok {
			continue
		}

		content := truncateString(fmt.Sprintf("  %s: %s", key, val), boxWidth-2)
		padding := boxWidth - 2 - utf8.RuneCountInString(content)

		_, _ = fmt.Fprintf(w, "║%s%*s║\n", content, padding, "")
	}

	_, _ = fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
}
