package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"
)

// Simulates a broker that takes a while to start accepting connections.
func main() {
	var port int
	var after time.Duration
	flag.IntVar(&port, "port", 5672, "Port to listen on (0 for ephemeral)")
	flag.DurationVar(&after, "after", 3*time.Second, "Duration before accepting connections")
	flag.Parse()

	_, _ = fmt.Fprintf(os.Stderr, "slow-broker: listening in %s\n", after)
	time.Sleep(after)

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "listen error: %v\n", err)
		os.Exit(2)
	}
	_, _ = fmt.Fprintf(os.Stderr, "slow-broker: accepting on %s\n", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "accept error: %v\n", err)
			os.Exit(3)
		}
		_ = conn.Close()
	}
}
