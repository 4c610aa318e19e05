package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// ErrShortBody is returned when the body stream ends before the declared
// CONTENT_LENGTH bytes have been read.
var ErrShortBody = errors.New("request body shorter than declared CONTENT_LENGTH")

const notSet = "<not set>"

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CGI Probe - Go</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            padding: 20px;
            margin: 0;
        }
        .container {
            max-width: 1000px;
            margin: 0 auto;
            background: white;
            border-radius: 10px;
            padding: 30px;
            box-shadow: 0 10px 40px rgba(0,0,0,0.2);
        }
        h1 {
            color: #667eea;
            border-bottom: 3px solid #667eea;
            padding-bottom: 10px;
        }
        h2 {
            color: #764ba2;
            margin-top: 30px;
        }
        .info-box {
            background: #f8f9fa;
            border-left: 4px solid #667eea;
            padding: 15px;
            margin: 10px 0;
            border-radius: 5px;
        }
        .env-var {
            background: #e9ecef;
            padding: 10px;
            margin: 5px 0;
            border-radius: 3px;
            font-size: 14px;
        }
        .env-var strong {
            color: #495057;
            display: inline-block;
            min-width: 200px;
        }
        .success {
            color: #28a745;
            font-weight: bold;
        }
        .timestamp {
            color: #6c757d;
            font-size: 12px;
        }
        a {
            color: #667eea;
            text-decoration: none;
        }
        a:hover {
            text-decoration: underline;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#x1F439; CGI Probe - Go</h1>
        <div class="info-box">
            <p class="success">&#x2713; CGI script executed successfully!</p>
            <p class="timestamp">Generated: %s</p>
        </div>

        <h2>&#x1F4CB; CGI Environment Variables</h2>
`

const othersHeading = `<h2>&#x1F527; All Environment Variables</h2>
`

const htmlFoot = `
        <h2>&#x1F517; Navigation</h2>
        <div class="info-box">
            <p><a href="/">&#x2190; Back to Home</a></p>
            <p><a href="/cgi-bin/test.sh">Test Shell CGI</a></p>
            <p><a href="/cgi-bin/test.pl">Test Perl CGI</a></p>
        </div>
    </div>
</body>
</html>
`

// Render writes a complete CGI response for ctx to w: the Content-Type
// header line, a blank line, and the HTML report. Rendering is a single
// sequential pass; output written before an error stays written.
func Render(w io.Writer, ctx *Context) error {
	if _, err := io.WriteString(w, "Content-Type: text/html\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, htmlHead, time.Now().Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	known := make(map[string]bool, len(KnownVars))
	for _, name := range KnownVars {
		known[name] = true
		value, ok := ctx.Env[name]
		if !ok {
			value = notSet
		}
		if err := writeVar(w, name, value); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, othersHeading); err != nil {
		return err
	}
	names := make([]string, 0, len(ctx.Env))
	for name := range ctx.Env {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeVar(w, name, ctx.Env[name]); err != nil {
			return err
		}
	}
	if ctx.Env["REQUEST_METHOD"] == "POST" {
		if n := ctx.declaredLength(); n > 0 {
			body := make([]byte, n)
			if _, err := io.ReadFull(ctx.Body, body); err != nil {
				return fmt.Errorf("%w: %v", ErrShortBody, err)
			}
			if err := writePre(w, body); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, htmlFoot)
	return err
}

// writeVar emits one labeled variable line. Values pass through unmodified;
// an escaping policy, if ever adopted, belongs here and in writePre.
func writeVar(w io.Writer, name, value string) error {
	_, err := fmt.Fprintf(w, "<div class=\"env-var\"><strong>%s:</strong> %s</div>\n", name, value)
	return err
}

func writePre(w io.Writer, body []byte) error {
	if _, err := io.WriteString(w, "\n        <h2>&#x1F4E4; POST Data</h2>\n        <div class=\"info-box\">\n            <pre>"); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</pre>\n        </div>\n")
	return err
}
