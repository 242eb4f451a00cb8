package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Stands in for the real service binary: accepts the arguments the
// launcher derives, then runs until terminated.
func main() {
	var host string
	var port int
	var reload bool
	var exitAfter time.Duration
	var code int
	flag.StringVar(&host, "host", "0.0.0.0", "Bind address")
	flag.IntVar(&port, "port", 8000, "Bind port")
	flag.BoolVar(&reload, "reload", false, "Live reload")
	flag.DurationVar(&exitAfter, "exit-after", 0, "Exit on our own after this long (0 = wait for a signal)")
	flag.IntVar(&code, "code", 0, "Exit code when --exit-after fires")
	flag.Parse()

	_, _ = fmt.Fprintf(os.Stderr, "fake-service: pid=%d host=%s port=%d reload=%v\n",
		os.Getpid(), host, port, reload)

	if exitAfter > 0 {
		time.Sleep(exitAfter)
		_, _ = fmt.Fprintln(os.Stderr, "fake-service: exiting now")
		os.Exit(code)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	s := <-sigCh
	_, _ = fmt.Fprintf(os.Stderr, "fake-service: got %s, shutting down\n", s)
}
