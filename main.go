package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KongZ/cgi-probe/gateway"
	"github.com/KongZ/cgi-probe/report"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// cgi-probe         render the request report to stdout (run as a CGI script)
// cgi-probe serve   host the reporter and a CGI script directory over HTTP
func main() {
	debug := gateway.GetEnvBool("DEBUG", false)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if len(os.Args) > 1 {
		if os.Args[1] != "serve" {
			log.Fatal().Msgf("Invalid command %q", os.Args[1])
		}
		serve()
		return
	}
	// CGI mode writes only to stdout; zerolog goes to stderr so a fatal
	// condition cannot corrupt the header framing.
	if err := report.Render(os.Stdout, report.FromOS()); err != nil {
		log.Fatal().Msgf("Error rendering report: %s", err)
	}
}

func serve() {
	config, err := gateway.LoadConfig()
	if err != nil {
		log.Fatal().Msgf("Error loading config: %s", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	mux.Handle("/probe", gateway.ReportHandler())
	mux.Handle("/cgi-bin/", gateway.ScriptHandler(config, "/cgi-bin"))
	ch := make(chan struct{})
	server := http.Server{Addr: config.ListenAddress, Handler: mux}
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGTERM)
		<-sigint
		// We received an interrupt signal, shut down.
		if err := server.Shutdown(context.Background()); err != nil {
			// Error from closing listeners, or context timeout:
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		close(ch)
	}()
	log.Info().Msgf("Listening on http://%s", config.ListenAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Msgf("Error serving: %s", err)
	}
	<-ch
}
