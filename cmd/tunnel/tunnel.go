package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/apolo96/deployprep"
	"github.com/joho/godotenv"
	"golang.ngrok.com/ngrok"
	"golang.ngrok.com/ngrok/config"
)

const DEFAULT_LOCAL_PORT = "8080"

type TunnelConfig struct {
	BotToken  string
	Domain    string
	LocalPort string
}

// loadTunnelConfig reads BOT_TOKEN, NGROK_AUTHTOKEN, NGROK_DOMAIN and PORT.
func loadTunnelConfig(getenv func(string) string) (TunnelConfig, error) {
	conf := TunnelConfig{
		BotToken:  getenv(deployprep.ENV_BOT_TOKEN),
		Domain:    getenv("NGROK_DOMAIN"),
		LocalPort: getenv("PORT"),
	}
	if conf.BotToken == "" {
		return conf, deployprep.ErrTokenRequired
	}
	if getenv("NGROK_AUTHTOKEN") == "" {
		return conf, errors.New("NGROK_AUTHTOKEN is not set")
	}
	if conf.LocalPort == "" {
		conf.LocalPort = DEFAULT_LOCAL_PORT
	}
	return conf, nil
}

func forwarder(backend *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(backend)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("forwarding request", "method", r.Method, "path", r.URL.Path)
		proxy.ServeHTTP(w, r)
	})
}

func run(ctx context.Context) error {
	/* Logger */
	file, closer, err := deployprep.NewLogFile(deployprep.APP_TUNNEL_LOG_FILE)
	if err != nil {
		return err
	}
	defer closer()
	logger := deployprep.NewLogger(file, slog.LevelDebug)
	slog.SetDefault(logger)
	console := deployprep.NewConsole(os.Stdout)

	if err := godotenv.Load(); err != nil {
		slog.Warn("loading .env", "error", err.Error())
	}
	conf, err := loadTunnelConfig(os.Getenv)
	if err != nil {
		console.Error("ERROR: %s", err.Error())
		return err
	}
	backend, err := url.Parse("http://127.0.0.1:" + conf.LocalPort)
	if err != nil {
		return err
	}

	/* Tunnel */
	console.Header("Starting ngrok tunnel")
	opts := []config.HTTPEndpointOption{}
	if conf.Domain != "" {
		opts = append(opts, config.WithDomain(conf.Domain))
	}
	listener, err := ngrok.Listen(ctx,
		config.HTTPEndpoint(opts...),
		ngrok.WithAuthtokenFromEnv(),
	)
	if err != nil {
		slog.Error("listening tunnel", "error", err.Error())
		return err
	}
	defer listener.Close()
	console.Text("Tunnel Listening on %s -> %s", listener.URL(), backend.String())
	slog.Info("tunnel listening", "url", listener.URL(), "backend", backend.String())

	/* Webhook */
	bot := deployprep.NewBotServerSvc(logger, &http.Client{Timeout: time.Second * 15}, console, deployprep.BOT_API_HOST)
	appURL := deployprep.NormalizeAppURL(listener.URL())
	bot.RegisterWebhook(ctx, appURL, conf.BotToken)
	if err := sleepContext(ctx, deployprep.WEBHOOK_PROPAGATION_WAIT); err != nil {
		return err
	}
	bot.VerifyWebhook(ctx, conf.BotToken)

	server := &http.Server{Handler: forwarder(backend)}
	go func() {
		<-ctx.Done()
		server.Close()
	}()
	console.Text("Forwarding webhook traffic. Press Ctrl+C to stop.")
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("serving tunnel", "error", err.Error())
		return err
	}
	return nil
}

// sleepContext waits for d unless ctx is done first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
