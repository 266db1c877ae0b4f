package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"snowfall/internal/web"
)

func main() {
	_ = mime.AddExtensionType(".wasm", "application/wasm")
	_ = mime.AddExtensionType(".js", "application/javascript")

	opts := web.DefaultOptions()
	addr := flag.String("addr", defaultAddr(), "listen address")
	flag.StringVar(&opts.StaticDir, "static", opts.StaticDir, "directory holding wasm_exec.js and snowfall.wasm")
	flag.IntVar(&opts.MaxTicks, "max-ticks", opts.MaxTicks, "largest preview simulation length")
	flag.IntVar(&opts.MaxSize, "max-size", opts.MaxSize, "largest preview width or height")
	flag.Parse()

	server := web.NewServer(*addr, web.NewRouter(opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			log.Printf("[Web] Shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost%s", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func defaultAddr() string {
	addr := ":" + strings.TrimSpace(os.Getenv("PORT"))
	if addr == ":" {
		addr = ":8080"
	}
	return addr
}
