// Command fakeapi runs the in-memory scheduling API used for local
// development and demos.
package main

import (
	"flag"
	"log"
	"net/http"

	"meetsync/internal/fakeapi"
)

func main() {
	addr := flag.String("addr", ":8091", "listen address")
	eventID := flag.String("event", "ev-30min", "event id to serve")
	connected := flag.Bool("connected", false, "report the calendar integration as connected")
	flag.Parse()

	srv := fakeapi.New(*eventID)
	srv.SetConnected(*connected)

	log.Printf("[fakeapi] serving event %s on %s", *eventID, *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatalf("[fakeapi] server failed: %v", err)
	}
}
