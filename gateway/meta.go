package gateway

import (
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const serverSoftware = "cgi-probe/1.0"

// MetaVars builds the CGI meta-variable map for a request. Script-specific
// variables (SCRIPT_NAME, PATH_INFO, PATH_TRANSLATED) are set by the caller
// once the target script is resolved.
func MetaVars(r *http.Request) map[string]string {
	meta := map[string]string{
		"GATEWAY_INTERFACE": "CGI/1.1",
		"SERVER_SOFTWARE":   serverSoftware,
		"REQUEST_METHOD":    r.Method,
		"QUERY_STRING":      r.URL.RawQuery,
		"SERVER_PROTOCOL":   r.Proto,
		"SERVER_NAME":       serverName(r),
		"SERVER_PORT":       serverPort(r),
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		meta["REMOTE_ADDR"] = host
	} else if r.RemoteAddr != "" {
		meta["REMOTE_ADDR"] = r.RemoteAddr
	}
	if r.ContentLength >= 0 {
		meta["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		meta["CONTENT_TYPE"] = contentType
	}
	if r.Host != "" {
		meta["HTTP_HOST"] = r.Host
	}
	for name, values := range r.Header {
		// Content-Type and Content-Length map to CONTENT_* above.
		if name == "Content-Type" || name == "Content-Length" {
			continue
		}
		key := "HTTP_" + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
		meta[key] = strings.Join(values, ", ")
	}
	return meta
}

func serverName(r *http.Request) string {
	host := strings.Split(r.Host, ":")[0]
	if host == "" {
		return "localhost"
	}
	return strings.ToLower(host)
}

func serverPort(r *http.Request) string {
	if _, port, err := net.SplitHostPort(r.Host); err == nil {
		return port
	}
	if r.TLS != nil {
		return "443"
	}
	return "80"
}

// resolveScript walks the URL path against dir, consuming segments while
// they name existing entries. The first regular file ends the walk; the
// remaining segments become PATH_INFO. scriptPath is empty when nothing
// under dir matches a file.
func resolveScript(dir, urlPath string) (scriptPath, scriptName, pathInfo string) {
	parts := strings.Split(urlPath, "/")
	current := dir
	for i, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		candidate := filepath.Join(current, part)
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", ""
		}
		current = candidate
		scriptName += "/" + part
		if !info.IsDir() {
			if rest := strings.Join(parts[i+1:], "/"); rest != "" {
				pathInfo = "/" + rest
			}
			return candidate, scriptName, pathInfo
		}
	}
	return "", "", ""
}
