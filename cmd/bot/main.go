package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvdheuvel/jeevesbot/config"
	"github.com/mvdheuvel/jeevesbot/internal/bot"
	"github.com/mvdheuvel/jeevesbot/internal/calendar"
	"github.com/mvdheuvel/jeevesbot/internal/chat"
	"github.com/mvdheuvel/jeevesbot/internal/memory"
	"github.com/mvdheuvel/jeevesbot/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := calendar.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to init calendar store: %v", err)
	}

	conversations, err := memory.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to init conversation memory: %v", err)
	}

	chatSvc := chat.NewService(cfg.OpenAIAPIKey, conversations)

	tgBot, err := bot.New(cfg, store, chatSvc)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	if err := tgBot.SetupWebhook(); err != nil {
		log.Fatalf("Failed to setup webhook: %v", err)
	}

	sched := scheduler.New(cfg, store)
	sched.SetSender(tgBot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	go func() {
		if err := tgBot.Start(ctx); err != nil {
			log.Printf("Bot error: %v", err)
		}
	}()

	log.Println("JeevesBot started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := tgBot.Stop(shutdownCtx); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("JeevesBot stopped")
}
