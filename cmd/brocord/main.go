package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/asianchinaboi/brocord/internal/api"
	"github.com/asianchinaboi/brocord/internal/api/routes"
	"github.com/asianchinaboi/brocord/internal/config"
	"github.com/asianchinaboi/brocord/internal/db"
	"github.com/asianchinaboi/brocord/internal/events"
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/asianchinaboi/brocord/internal/journal"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/asianchinaboi/brocord/internal/metrics"
	"github.com/asianchinaboi/brocord/internal/transport"
	"github.com/asianchinaboi/brocord/internal/uid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		forceStatus bool
	)
	rootCmd := &cobra.Command{
		Use:   "brocord",
		Short: "Gateway client that keeps a session alive and republishes dispatch events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, forceStatus)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yml", "path to the config file")
	rootCmd.Flags().BoolVar(&forceStatus, "status", false, "serve the status api even if disabled in config")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string, forceStatus bool) error {
	config.LoadEnv()
	conf, created, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Setup(conf.Log.Dir, config.Console()); err != nil {
		return err
	}
	defer logger.Close()
	if created {
		logger.Info.Println("Created", configPath)
	}
	if err := uid.SetNode(conf.Gateway.Node); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	emitter := events.NewEmitter()
	props := gateway.DefaultProperties(conf.Gateway.ClientName)
	if conf.Gateway.OS != "" {
		props.OS = conf.Gateway.OS
	}
	session := gateway.NewSession(gateway.Config{
		URL:        conf.Gateway.URL,
		Intents:    conf.Gateway.Intents,
		Properties: props,
		Token:      config.Token,
		Observer:   metrics.New(registry),
	}, transport.NewDialer(conf.Gateway.ConnectTimeout), emitter)

	emitter.On(events.READY, func(frame gateway.DataFrame) {
		ready, err := events.Decode[events.Ready](frame)
		if err != nil {
			logger.Warn.Println("bad READY payload:", err)
			return
		}
		logger.Info.Printf("Ready as %s in %d guilds", ready.User.Name, len(ready.Guilds))
	})

	if conf.Journal.Enabled {
		database, err := db.Open(conf.Journal.DSN)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := journal.Migrate(context.Background(), database); err != nil {
			return err
		}
		j := journal.New(database, journal.Options{
			Compress:     conf.Journal.Compress,
			Buffer:       conf.Journal.Buffer,
			ConnectionId: session.ConnectionID,
		})
		defer j.Close()
		emitter.OnAny(j.Handler)
	}

	var server *http.Server
	if conf.Status.Enabled || forceStatus {
		gin.SetMode(gin.ReleaseMode)
		server = api.StartServer(conf.Status, routes.Deps{
			Session:  session,
			Gatherer: registry,
		})
		go func() {
			logger.Info.Println("Status api on", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error.Println(err)
			}
		}()
	}

	if err := session.Start(); err != nil {
		return err
	}

	c := make(chan os.Signal, 1) //listen for cancellation
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c //pause code here until interrupted

	logger.Info.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), conf.Status.Timeout.Server)
	defer cancel()
	if server != nil {
		server.Shutdown(ctx)
	}
	return session.Shutdown(ctx)
}
