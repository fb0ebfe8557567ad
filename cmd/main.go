package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-directory/config"
	"employee-directory/internal/app/service"
	"employee-directory/internal/delivery/console"
	"employee-directory/internal/delivery/telegram"
	"employee-directory/internal/domain"
	"employee-directory/internal/repository/memory"
	"employee-directory/internal/repository/sqlite"
	"employee-directory/pkg/workerpool"

	"github.com/mattn/go-isatty"
	"gopkg.in/telebot.v3"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logFile, err := config.SetupLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	// Audit lines on stderr would interleave with the prompts of a live session.
	if cfg.Mode == config.ModeConsole && cfg.LogFile == "" && interactive() {
		log.SetOutput(io.Discard)
	}
	log.Printf("[main] starting mode=%s store=%s", cfg.Mode, cfg.Store)

	repo, closeRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	if cfg.Seed {
		if err := service.SeedEmployees(repo, domain.DefaultEmployees()); err != nil {
			return err
		}
	}

	auth := service.NewAuthService(repo)
	employees := service.NewEmployeeService(repo)

	if cfg.Mode == config.ModeTelegram {
		return runTelegram(cfg, auth, employees)
	}

	c := console.New(os.Stdin, os.Stdout, auth, employees)
	if cfg.Seed {
		c.Credentials = domain.DefaultEmployees()
	}
	err = c.Run()
	if errors.Is(err, console.ErrInputClosed) {
		log.Println("[main] input closed, exiting")
		return nil
	}
	return err
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func openStore(cfg *config.Config) (domain.EmployeeRepo, func(), error) {
	if cfg.Store != config.StoreSqlite {
		return memory.NewMemoryEmployeeRepo(), func() {}, nil
	}
	db, err := sqlite.Open(cfg.SqliteDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite store %q: %w", cfg.SqliteDSN, err)
	}
	return sqlite.NewSqliteEmployeeRepo(db), func() { db.Close() }, nil
}

func runTelegram(cfg *config.Config, auth *service.AuthService, employees *service.EmployeeService) error {
	// One worker: the repositories are not safe for concurrent use.
	pool := workerpool.NewWorkerPool(1, 32)
	defer pool.Close()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	handler := telegram.NewHandler(bot, auth, employees, service.NewAsyncService(pool))
	handler.Register()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("[main] stopping bot")
		bot.Stop()
	}()

	log.Println("[main] bot started")
	bot.Start()
	return nil
}
