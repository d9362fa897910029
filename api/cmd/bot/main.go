package main

import (
	"context"
	"errors"
	"hash/fnv"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kids-lecture/api/internal/client"
	"kids-lecture/api/internal/config"
	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/speech"
	"kids-lecture/api/internal/telegram"
)

func main() {
	cfg := config.LoadBot()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("telegram login", "error", err)
	}
	bot.Debug = false
	log.Info("authorized", "bot", bot.Self.UserName)

	api := client.New(cfg.LectureAPIURL, nil)
	r := telegram.NewRouter(bot, api, log)
	r.Timeout = cfg.GenerateTimeout
	if cfg.OpenAIAPIKey != "" {
		r.Voice = func(sink speech.Sink) speech.Synthesizer {
			return speech.NewOpenAISynthesizerWithBaseURL(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TTSModel, sink)
		}
	} else {
		log.Warn("OPENAI_API_KEY is empty: listen buttons disabled")
	}

	// DefaultServeMux, so ListenForWebhook and /healthz share one listener.
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Addr()
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(ctx, addr, bot, r, webhookURL, log)
	} else {
		startPollingMode(ctx, addr, bot, r, log)
	}
	r.Wait()
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, log *logger.Logger) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal("webhook config", "error", err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal("set webhook", "error", err)
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Info("webhook updates channel closed")
	}()

	log.Info("webhook listening", "addr", addr, "path", path)
	serve(ctx, addr, log)
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, log *logger.Logger) {
	// drop a webhook left over from a previous deployment, or getUpdates is refused
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn("delete webhook", "error", err)
	}
	go serve(ctx, addr, log)
	runPolling(ctx, bot, r.HandleUpdate, log)
}

func serve(ctx context.Context, addr string, log *logger.Logger) {
	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 10 * time.Second} // DefaultServeMux
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("health server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server", "error", err)
	}
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update), log *logger.Logger) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.Warn("polling error", "error", err, "retry_in", d)
			select {
			case <-ctx.Done():
				return
			case <-time.After(d):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// shortHash derives a stable webhook path segment from the token.
func shortHash(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 16)
}
