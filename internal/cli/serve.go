// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"github.com/alvinbaena/pwd-autopsy/internal/api"
	"github.com/alvinbaena/pwd-autopsy/internal/config"
	"github.com/alvinbaena/pwd-autopsy/internal/metrics"
	"github.com/alvinbaena/pwd-autopsy/internal/util"
	"github.com/alvinbaena/pwd-autopsy/pkg/hibp"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password autopsy API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	serveCmd.Flags().StringVar(&hibpURL, "hibp-url", hibp.DefaultBaseURL, "Base URL of the Pwned Passwords API")
	serveCmd.Flags().BoolVar(&serveBreaches, "breaches", true, "Allow clients to request breach lookups")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	if !verbose && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var checker *hibp.Client
	if cfg.BreachLookup {
		checker, err = hibp.NewClient(hibp.Config{BaseURL: cfg.HibpURL, CacheSize: cfg.CacheSize, RetryMax: hibp.DefaultRetryMax})
		if err != nil {
			return fmt.Errorf("error initializing breach lookups: %w", err)
		}
		defer checker.Close()
		defer checker.LogStats()
	} else {
		log.Info().Msg("breach lookups are disabled")
	}

	router := newRouter(breachChecker(checker), metrics.NewCollector(nil))

	srvAddr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			// service connections with tls certs
			if err := srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		} else if cfg.SelfTLS {
			log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
			pair, err := selfSignedCertificate()
			if err != nil {
				log.Fatal().Err(err).Msg("error using auto self-signed certificate")
			}

			srv.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{pair},
			}

			// service connections with tls config, no need to pass files
			if err = srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
		}
	}()

	gracefulShutdown(srv)
	return nil
}

// newRouter wires the autopsy API and the metrics endpoint. Request bodies are never logged.
func newRouter(checker api.BreachChecker, collector *metrics.Collector) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.SetLogger(
		logger.WithSkipPath([]string{"/metrics"}),
		logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
			return zerolog.New(gin.DefaultWriter).With().Timestamp().Logger()
		}),
	))

	router.GET("/metrics", gin.WrapH(collector.Handler()))

	v1 := router.Group("/v1")
	api.RegisterAutopsyApi(v1.Group("/autopsy"), checker, collector)

	return router
}

func selfSignedCertificate() (tls.Certificate, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	// generating the certificate
	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	return tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can't be a catch, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
