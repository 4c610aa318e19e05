package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Response is the parsed output of a CGI script.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// ErrInvalidResponse is returned when script output has no blank line
// terminating the header section.
var ErrInvalidResponse = errors.New("invalid cgi response")

// ParseResponse splits raw CGI output into header lines and body. Headers
// run until the first blank line; an optional Status header overrides the
// default 200.
func ParseResponse(raw []byte) (*Response, error) {
	response := &Response{Status: 200, Headers: make(map[string]string)}
	rest := raw
	for {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return nil, ErrInvalidResponse
		}
		line := strings.TrimRight(string(rest[:idx]), "\r")
		rest = rest[idx+1:]
		if line == "" {
			response.Body = rest
			return response, nil
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed cgi header line %q", line)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if strings.EqualFold(name, "Status") {
			// the value may carry a reason phrase, e.g. "404 Not Found"
			fields := strings.Fields(value)
			if len(fields) == 0 {
				return nil, fmt.Errorf("malformed cgi status %q", value)
			}
			code, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("malformed cgi status %q", value)
			}
			response.Status = code
			continue
		}
		response.Headers[name] = value
	}
}
