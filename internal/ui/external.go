package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// noticeMsg shows a short message in the command bar.
type noticeMsg struct {
	text string
	err  bool
}

// clearNoticeMsg clears the notice if it is still the one identified by seq.
type clearNoticeMsg struct {
	seq int
}

var errNoLink = errors.New("nothing to open for this item")

// openBrowser hands url to the platform's default opener.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	// Reap the opener; its exit status says nothing about the browser.
	go func() { _ = cmd.Wait() }()
	return nil
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func openLinkCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return noticeMsg{text: errNoLink.Error(), err: true}
		}
		if err := open(url); err != nil {
			return noticeMsg{text: err.Error(), err: true}
		}
		return noticeMsg{text: "Opened " + url}
	}
}

func copyLinkCmd(copyText func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return noticeMsg{text: errNoLink.Error(), err: true}
		}
		if err := copyText(url); err != nil {
			return noticeMsg{text: err.Error(), err: true}
		}
		return noticeMsg{text: "Copied " + url}
	}
}
