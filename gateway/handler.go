package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/KongZ/cgi-probe/report"
	"github.com/rs/zerolog/log"
)

const internalServerErrorMsg = "Internal server error"

// ScriptHandler serves CGI scripts from cfg.ScriptDir, mounted at prefix.
func ScriptHandler(cfg *Config, prefix string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := doServeScript(w, r, cfg, prefix); err != nil {
			log.Error().Msgf("Error serving %s: %s", r.URL.Path, err)
		}
	})
}

func doServeScript(w http.ResponseWriter, r *http.Request, cfg *Config, prefix string) error {
	rel := strings.TrimPrefix(r.URL.Path, prefix)
	scriptPath, scriptName, pathInfo := resolveScript(cfg.ScriptDir, rel)
	if scriptPath == "" {
		http.Error(w, "NOT FOUND", http.StatusNotFound)
		return fmt.Errorf("no script for %s", r.URL.Path)
	}

	meta := MetaVars(r)
	meta["SCRIPT_NAME"] = prefix + scriptName
	meta["SCRIPT_FILENAME"] = scriptPath
	if pathInfo != "" {
		meta["PATH_INFO"] = pathInfo
		meta["PATH_TRANSLATED"] = filepath.Join(cfg.ScriptDir, pathInfo)
	}

	var body []byte
	if r.ContentLength > 0 && r.Body != nil {
		defer r.Body.Close()
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return fmt.Errorf("could not read request body: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
	defer cancel()
	raw, err := Execute(ctx, scriptPath, meta, cfg.ExtraEnv, body, cfg.MaxOutput)
	if err != nil {
		http.Error(w, internalServerErrorMsg, http.StatusInternalServerError)
		return err
	}
	return writeResponse(w, raw)
}

// ReportHandler runs the built-in request reporter in-process, through the
// same meta-variable and response-parsing pipeline as an external script.
func ReportHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := doServeReport(w, r); err != nil {
			log.Error().Msgf("Error serving %s: %s", r.URL.Path, err)
		}
	})
}

func doServeReport(w http.ResponseWriter, r *http.Request) error {
	meta := MetaVars(r)
	meta["SCRIPT_NAME"] = r.URL.Path
	if r.Body != nil {
		defer r.Body.Close()
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, &report.Context{Env: meta, Body: r.Body}); err != nil {
		http.Error(w, internalServerErrorMsg, http.StatusInternalServerError)
		return err
	}
	return writeResponse(w, buf.Bytes())
}

func writeResponse(w http.ResponseWriter, raw []byte) error {
	response, err := ParseResponse(raw)
	if err != nil {
		http.Error(w, internalServerErrorMsg, http.StatusInternalServerError)
		return err
	}
	for name, value := range response.Headers {
		w.Header().Add(name, value)
	}
	w.WriteHeader(response.Status)
	if _, err := w.Write(response.Body); err != nil {
		return fmt.Errorf("could not write response body: %w", err)
	}
	return nil
}
