package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// interpreters maps script extensions to the command used to run them.
// Files with no matching extension are executed directly.
var interpreters = map[string]string{
	".py":  "python3",
	".pl":  "perl",
	".sh":  "sh",
	".rb":  "ruby",
	".php": "php",
}

// ErrOutputTooLarge is returned when a script writes more than the
// configured output limit.
var ErrOutputTooLarge = errors.New("script output exceeds CGI_MAX_OUTPUT")

// Execute runs a CGI script with meta as its environment and body on stdin,
// returning the raw output. The caller bounds execution time through ctx.
func Execute(ctx context.Context, scriptPath string, meta map[string]string, extraEnv []string, body []byte, maxOutput int64) ([]byte, error) {
	var cmd *exec.Cmd
	if interpreter, ok := interpreters[filepath.Ext(scriptPath)]; ok {
		cmd = exec.CommandContext(ctx, interpreter, scriptPath)
	} else {
		cmd = exec.CommandContext(ctx, scriptPath)
	}
	env := make([]string, 0, len(meta)+len(extraEnv)+1)
	for name, value := range meta {
		env = append(env, name+"="+value)
	}
	// the interpreter lookup inside the script still needs PATH
	env = append(env, "PATH="+os.Getenv("PATH"))
	env = append(env, extraEnv...)
	cmd.Env = env
	if len(body) > 0 {
		cmd.Stdin = bytes.NewReader(body)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w [%s]", filepath.Base(scriptPath), err, strings.TrimSpace(stderr.String()))
	}
	if int64(stdout.Len()) > maxOutput {
		return nil, ErrOutputTooLarge
	}
	return stdout.Bytes(), nil
}
