// Command policymcp is an MCP (Model Context Protocol) server that lets AI
// assistants register users and read the company policy document.
//
// # Installation
//
//	go install github.com/lvillar/policymcp/cmd/policymcp@latest
//
// # Usage
//
//	policymcp -config policymcp.hcl
//	policymcp -store data/users.json -document docs/policy.pdf -init-store
//	policymcp -transport http -listen :8080 -document docs/policy.pdf
//	policymcp gen-policy -out docs/policy.pdf
//
// # Available Tools
//
//   - create-user: Append a user record and return its id
//
// # Available Resources
//
//   - resource://docs/company-policy : Text of the company policy PDF
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/lvillar/policymcp"
	"github.com/lvillar/policymcp/internal/logger"
	"github.com/lvillar/policymcp/internal/metrics"
	"github.com/lvillar/policymcp/internal/samplepdf"
	"github.com/lvillar/policymcp/mcp"
	"github.com/lvillar/policymcp/policydoc"
	"github.com/lvillar/policymcp/registry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "policymcp: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "gen-policy" {
		return genPolicy(args[1:], stderr)
	}

	fs := flag.NewFlagSet("policymcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to an HCL configuration file")
	storePath := fs.String("store", "", "Path to the JSON user store")
	documentPath := fs.String("document", "", "Path to the company policy PDF")
	transport := fs.String("transport", "", "Transport: stdio or http")
	listen := fs.String("listen", "", "Listen address for the http transport")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logPretty := fs.Bool("log-pretty", false, "Human-readable console logs")
	initStore := fs.Bool("init-store", false, "Create an empty user store if none exists")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := policymcp.LoadConfig(*configPath,
		policymcp.WithStorePath(*storePath),
		policymcp.WithDocumentPath(*documentPath),
		policymcp.WithTransport(*transport),
		policymcp.WithListen(*listen),
		policymcp.WithLogLevel(*logLevel),
		policymcp.WithLogPretty(*logPretty),
		policymcp.WithCreateStore(*initStore),
	)
	if err != nil {
		return err
	}

	log := logger.NewLogger(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: stderr,
	})
	log.LogServerStart(cfg.Transport, cfg.StorePath, cfg.DocumentPath)

	store := registry.NewFileStore(cfg.StorePath)
	if cfg.CreateStore {
		if err := store.Init(ctx); err != nil {
			return policymcp.StorageError("startup", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	users := registry.New(store,
		registry.WithLogger(log.StoreLogger(cfg.StorePath)),
		registry.WithCountObserver(m.SetUsers),
	)
	existing, err := users.Records(ctx)
	if err != nil {
		return err
	}
	m.SetUsers(len(existing))

	policy := policydoc.New(cfg.DocumentPath, policydoc.WithLogger(log.With("component", "policydoc")))
	if err := policy.Check(); err != nil {
		return err
	}

	srv := mcp.NewServer(cfg.Name, policymcp.Version, users, policy,
		mcp.WithLogger(log),
		mcp.WithMetrics(m),
	)

	switch cfg.Transport {
	case policymcp.TransportHTTP:
		err = serveHTTP(ctx, cfg.Listen, srv.Router(reg, policy), log)
	default:
		log.LogServerReady(cfg.Transport, "")
		err = srv.ServeStdio(ctx, stdin, stdout)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}

	log.LogServerShutdown()
	return err
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.LogServerReady(policymcp.TransportHTTP, addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func genPolicy(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen-policy", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "company-policy.pdf", "Output path of the generated PDF")
	title := fs.String("title", "", "Override the document title")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	doc := samplepdf.CompanyPolicy()
	if *title != "" {
		doc.Title = *title
	}
	if err := samplepdf.WriteFile(*out, doc); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s\n", *out)
	return nil
}
