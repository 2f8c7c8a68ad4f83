package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

const spinnerDelay = 150 * time.Millisecond

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)
	return s
}

// startDelayedSpinner animates message on w until the returned func is
// called. Steps that finish within delay never show it.
func startDelayedSpinner(w io.Writer, message string, delay time.Duration) func() {
	if strings.TrimSpace(message) == "" {
		message = "Working..."
	}
	if delay < 0 {
		delay = 0
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	var once sync.Once
	go func() {
		defer close(stopped)
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-done:
			return
		case <-timer.C:
		}

		s := newSpinner()
		frames := s.Spinner.Frames
		interval := s.Spinner.FPS
		if interval <= 0 {
			interval = 90 * time.Millisecond
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r%s %s", s.Style.Render(frames[i%len(frames)]), message)
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[2K")
				return
			case <-ticker.C:
			}
		}
	}()
	return func() {
		once.Do(func() {
			close(done)
			<-stopped
		})
	}
}
