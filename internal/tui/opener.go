package tui

import (
	"os/exec"
	"runtime"
	"strings"
	"unicode"
)

// urlPlaceholder in an opener command marks where the link goes; without it the link is
// appended as the last argument.
const urlPlaceholder = "{url}"

// openerArgv builds the argv used to open u. A custom opener such as
// `firefox --new-tab` or `open -a "Google Chrome" {url}` wins over the OS default.
func openerArgv(opener, u string) []string {
	words := splitShellWords(opener)
	if len(words) == 0 {
		switch runtime.GOOS {
		case "darwin":
			return []string{"open", u}
		case "windows":
			return []string{"cmd", "/c", "start", "", u}
		default:
			return []string{"xdg-open", u}
		}
	}
	placed := false
	for i, w := range words {
		if strings.Contains(w, urlPlaceholder) {
			words[i] = strings.ReplaceAll(w, urlPlaceholder, u)
			placed = true
		}
	}
	if !placed {
		words = append(words, u)
	}
	return words
}

func openerCommand(opener, u string) *exec.Cmd {
	argv := openerArgv(opener, u)
	return exec.Command(argv[0], argv[1:]...)
}

// splitShellWords splits a command line into argv. Single quotes are literal, double
// quotes group, and a backslash escapes the next rune outside single quotes.
func splitShellWords(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote, inWord = r, true
		case quote == 0 && unicode.IsSpace(r):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}
