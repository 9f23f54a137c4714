package ui

import (
	"bufio"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

const (
	streamBatchSize     = 256
	streamFlushInterval = 50 * time.Millisecond
	maxLineLength       = 1024 * 1024
)

// StreamLines reads one item per line from r and hands them to send as
// AppendItemsMsg batches, flushing every streamBatchSize lines or
// streamFlushInterval, whichever comes first. Blank lines are skipped. It
// finishes with a SourceDoneMsg and blocks until r is exhausted.
func StreamLines(r io.Reader, send func(tea.Msg)) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errc <- scanner.Err()
	}()

	ticker := time.NewTicker(streamFlushInterval)
	defer ticker.Stop()

	var batch []string
	flush := func() {
		if len(batch) > 0 {
			send(AppendItemsMsg{Items: batch})
			batch = nil
		}
	}

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				flush()
				send(SourceDoneMsg{Err: errors.Wrap(<-errc, "read items")})
				return
			}
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			batch = append(batch, line)
			if len(batch) >= streamBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
