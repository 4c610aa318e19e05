package report

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// KnownVars is the fixed, ordered list of CGI meta-variables that are always
// rendered first. Absent entries are shown with a placeholder.
var KnownVars = []string{
	"REQUEST_METHOD", "PATH_INFO", "QUERY_STRING", "CONTENT_TYPE",
	"CONTENT_LENGTH", "SERVER_NAME", "SERVER_PORT", "SERVER_PROTOCOL",
	"SCRIPT_NAME", "REMOTE_ADDR", "REMOTE_HOST", "HTTP_HOST",
	"HTTP_USER_AGENT", "HTTP_ACCEPT", "HTTP_COOKIE",
}

// Context is a read-only snapshot of one CGI invocation: the environment
// variables and the request body stream. The declared body length comes
// from CONTENT_LENGTH inside the snapshot.
type Context struct {
	Env  map[string]string
	Body io.Reader
}

// FromOS snapshots the process environment and stdin into a Context. This is
// the only place the reporter touches ambient process state.
func FromOS() *Context {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		split := strings.SplitN(kv, "=", 2)
		env[split[0]] = split[1]
	}
	return &Context{Env: env, Body: os.Stdin}
}

// declaredLength returns the CONTENT_LENGTH value, or 0 when it is absent,
// non-numeric or negative.
func (c *Context) declaredLength() int64 {
	n, err := strconv.ParseInt(c.Env["CONTENT_LENGTH"], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
