package client

import (
	"bufio"
	"io"
	"strings"
)

// streamEvent is one decoded server-sent event.
type streamEvent struct {
	name string
	data string
}

// readEvents decodes server-sent events from r and hands each one to
// fn, until the stream ends or fn returns an error. Multi-line data is
// joined with newlines; comment lines are skipped. The board snapshots
// on this stream can be large, so the line buffer is generous.
func readEvents(r io.Reader, fn func(streamEvent) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	name := ""
	var data []string
	for scanner.Scan() {
		line := scanner.Text()

		// A blank line dispatches the accumulated event
		if line == "" {
			if len(data) > 0 {
				event := streamEvent{name: name, data: strings.Join(data, "\n")}
				if err := fn(event); err != nil {
					return err
				}
			}
			name = ""
			data = nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := line, ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			field = line[:i]
			value = strings.TrimPrefix(line[i+1:], " ")
		}
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
	}
	return scanner.Err()
}
