package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerOps shows long content in a full screen pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	run     func(content string) error
}

// NewPagerOps creates a pager backed by ov
func NewPagerOps() *PagerOps {
	p := &PagerOps{}
	p.run = runOv
	return p
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Available reports whether the pager can take over the terminal
func (p *PagerOps) Available() bool {
	return p.program != nil
}

// ShowInPager releases the terminal, runs the pager on content and restores
// the terminal afterwards
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Clear screen to reduce visual artifacts when returning
		fmt.Print("\x1b[2J\x1b[H")
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return p.run(content)
}

func runOv(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}
	return root.Run()
}
