/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package login

import (
	"errors"
	"io"
	"io/ioutil"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/pkg/browser"
)

// ErrPrompterClosed the prompter was used after Close
var ErrPrompterClosed = errors.New("prompter closed")

// Prompter reads one line of user input per Prompt call
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// PromptFactory acquires a prompter, the coordinator closes it
type PromptFactory func() (Prompter, error)

// TerminalPrompter prompts on the terminal through promptui
type TerminalPrompter struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
	closed bool
}

// NewTerminalPrompter new a prompter on stdin/stdout
func NewTerminalPrompter() (Prompter, error) {
	return &TerminalPrompter{
		stdin:  ioutil.NopCloser(os.Stdin),
		stdout: os.Stdout,
	}, nil
}

// Prompt blocks until the user enters a line
func (p *TerminalPrompter) Prompt(label string) (string, error) {
	if p.closed {
		return "", ErrPrompterClosed
	}
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	return prompt.Run()
}

// Close releases the prompter, later prompts fail. os.Stdin is not owned by
// the prompter and stays open, promptui builds its readline per Prompt call.
func (p *TerminalPrompter) Close() error {
	if p.closed {
		return ErrPrompterClosed
	}
	p.closed = true
	return p.stdin.Close()
}

// Opener opens a url out of band
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

// Open implements Opener
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// BrowserOpener opens urls in the default browser
var BrowserOpener Opener = OpenerFunc(browser.OpenURL)
