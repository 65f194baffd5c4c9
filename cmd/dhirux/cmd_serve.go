// cmd/dhirux/cmd_serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhirajp15/dhirux-workflows/internal/delivery"
	"github.com/dhirajp15/dhirux-workflows/internal/dispatch"
	"github.com/dhirajp15/dhirux-workflows/internal/scheduler"
	"github.com/dhirajp15/dhirux-workflows/internal/state"
	"github.com/dhirajp15/dhirux-workflows/internal/telegram"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
	"github.com/dhirajp15/dhirux-workflows/internal/webhook"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dhirux daemon",
	RunE:  runServe,
}

func writePIDFile(dataDir string) (string, error) {
	pidPath := filepath.Join(dataDir, "dhirux.pid")
	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write PID file: %w", err)
	}
	return pidPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pidPath, err := writePIDFile(cfg.DataDir)
	if err != nil {
		return err
	}
	defer os.Remove(pidPath)

	// Stores
	sessions := state.NewSessionStore(cfg.DataDir)
	transcripts := state.NewTranscriptStore(cfg.DataDir)
	tasks := state.NewTaskStore(filepath.Join(cfg.DataDir, "tasks.json"))

	// Orchestrator
	service, err := buildService(cfg, transcripts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dispatch queue: per-session lanes feeding the orchestrator.
	retry := dispatch.DefaultRetryPolicy()
	queue := dispatch.NewQueue(int64(cfg.MaxConcurrent))
	queue.SetProcessor(func(turn *dispatch.Turn) error {
		var resp string
		err := retry.Execute(func() error {
			var chatErr error
			resp, chatErr = service.Chat(turn.Ctx, turn.Text, turn.SessionID)
			return chatErr
		})
		if err != nil {
			turn.Status = dispatch.TurnStatusFailed
			return err
		}
		turn.Status = dispatch.TurnStatusComplete
		if touchErr := sessions.Touch(turn.Ctx, turn.SessionID); touchErr != nil {
			slog.Warn("touch session failed", "session_id", turn.SessionID, "error", touchErr)
		}
		if turn.OnComplete != nil {
			turn.OnComplete(resp)
		}
		return nil
	})
	queue.Start(ctx)
	defer queue.Stop()

	// Delivery routing for responses produced outside a live request,
	// e.g. scheduled tasks.
	deliveries := delivery.NewRegistry()
	deliveries.Register("task:", func(key types.SessionKey, message string) error {
		slog.Info("task response", "session_key", key, "response", message)
		return nil
	})

	// Shared handler for webhook-triggered and scheduled prompts.
	taskHandler := func(key types.SessionKey, prompt string) (string, error) {
		sid, err := sessions.ResolveOrCreate(ctx, key)
		if err != nil {
			return "", fmt.Errorf("resolve session: %w", err)
		}
		return service.Chat(ctx, prompt, sid)
	}

	// HTTP surface
	srv := webhook.NewServer(service, tasks, taskHandler, sessions, transcripts)
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: srv}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	// Scheduler
	sched := scheduler.New(tasks, func(key types.SessionKey, prompt string) {
		resp, err := taskHandler(key, prompt)
		if err != nil {
			slog.Error("scheduled task failed", "session_key", key, "error", err)
			return
		}
		if err := deliveries.Deliver(key, resp); err != nil {
			slog.Warn("deliver task response failed", "session_key", key, "error", err)
		}
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// Telegram
	if cfg.Telegram.Token != "" {
		adapter, err := telegram.New(cfg.Telegram.Token, queue, sessions, transcripts)
		if err != nil {
			return fmt.Errorf("create telegram adapter: %w", err)
		}
		deliveries.Register("telegram:", adapter.DeliveryHandler())
		go adapter.Start(ctx)
	}

	slog.Info("dhirux started",
		"data_dir", cfg.DataDir,
		"http_addr", cfg.HTTPAddr,
		"agentic_enabled", service.Enabled(),
		"agentic_ready", service.Ready(),
		"allow_fallback", cfg.Agentic.AllowFallback,
		"model_id", cfg.Agentic.ModelID,
		"telegram", cfg.Telegram.Token != "",
		"pid_file", pidPath,
	)
	if service.Enabled() && !service.Ready() {
		if cfg.Agentic.AllowFallback {
			slog.Warn("agent backend not configured, serving via classic fallback")
		} else {
			slog.Warn("agent backend not configured and fallback disallowed, chat requests will fail",
				"hint", "set llm.base_url and llm.model or AGENTIC_ALLOW_CLASSIC_FALLBACK=1")
		}
	}

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown failed", "error", err)
	}
	if !queue.WaitIdle(10 * time.Second) {
		slog.Warn("timed out waiting for in-flight turns")
	}

	return nil
}
