package tui

import (
	"errors"
	"io"
	"net/url"
	"strings"
)

// Navigator opens an item's href. It runs off the event loop, so a slow opener never
// blocks or resets the widget.
type Navigator interface {
	Open(href string) error
}

// BrowserNavigator resolves hrefs against BaseURL and hands them to Opener, or to the OS
// opener when Opener is empty.
type BrowserNavigator struct {
	BaseURL string
	Opener  string
}

func (n BrowserNavigator) Resolve(href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("empty href")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	base := strings.TrimSpace(n.BaseURL)
	if ref.IsAbs() || base == "" {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

func (n BrowserNavigator) Open(href string) error {
	u, err := n.Resolve(href)
	if err != nil {
		return err
	}
	cmd := openerCommand(n.Opener, u)
	// Prevent any output from flashing in the terminal.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}
