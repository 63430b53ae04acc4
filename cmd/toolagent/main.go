// Package main provides the interactive CLI: a mode menu offering a
// memory-backed chat session or a run of the canned example queries.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/config"
	"github.com/pushap-crossml/toolagent/memory/inmemory"
	"github.com/pushap-crossml/toolagent/models"
	"github.com/pushap-crossml/toolagent/session"
	"github.com/pushap-crossml/toolagent/tools"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Log to a file so the conversation stays readable on the terminal.
	logDir := ".logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.Create(filepath.Join(logDir, "toolagent.log"))
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if cfg.Model.APIKey == "" {
		return errors.New("OPENAI_API_KEY is not set: export it or add it to .env")
	}
	if cfg.Tools.Weather.APIKey == "" {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: OPENWEATHER_API_KEY is not set; "+
				"weather queries will fail.%s\n\n",
			colorYellow, colorReset)
	}

	model, err := models.NewOpenAIModel(cfg.Model.Name, cfg.Model.APIKey)
	if err != nil {
		return err
	}

	registry := toolagent.NewRegistry(
		toolagent.WithToolTimeout(cfg.ToolTimeout()),
		toolagent.WithRegistryLogger(logger),
	)
	registry.MustRegister(tools.NewCalculator())
	registry.MustRegister(tools.NewTextAnalyzer())
	registry.MustRegister(tools.NewDateOffset(nil))
	registry.MustRegister(tools.NewWeather(tools.WeatherConfig{
		APIKey:  cfg.Tools.Weather.APIKey,
		BaseURL: cfg.Tools.Weather.BaseURL,
		Timeout: cfg.ToolTimeout(),
	}))

	loop := toolagent.NewLoop(model, registry, toolagent.LoopConfig{
		MaxIterations: cfg.Loop.MaxIterations,
	}).WithLogger(logger)

	userID := cfg.Memory.UserID
	if userID == "" {
		userID = "local"
	}
	sess := session.New(loop,
		session.WithMemory(inmemory.New(), userID),
		session.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n%s%sTool Agent%s\n", colorBold, colorYellow, colorReset)
	fmt.Println("Select mode:")
	fmt.Printf("  %s1.%s Interactive Chat (recommended)\n", colorCyan, colorReset)
	fmt.Printf("  %s2.%s Run Example Queries\n", colorCyan, colorReset)
	fmt.Println()

	rl, err := readline.New(colorCyan + "Enter choice (1 or 2): " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	choice, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}
		return fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.TrimSpace(choice) {
	case "2":
		return runExampleQueries(ctx, sess)
	case "1":
		return interactiveChat(ctx, sess)
	default:
		fmt.Println("Invalid choice. Running interactive chat by default.")
		return interactiveChat(ctx, sess)
	}
}

// interactiveChat runs the REPL until an exit command, EOF, or Ctrl-C.
func interactiveChat(ctx context.Context, sess *session.Session) error {
	fmt.Printf("\n%s%s%s\n", colorYellow, strings.Repeat("=", 60), colorReset)
	fmt.Printf("%s Tool Agent with Memory - Interactive Chat%s\n", colorBold, colorReset)
	fmt.Printf("%s%s%s\n", colorYellow, strings.Repeat("=", 60), colorReset)
	fmt.Println("\nAvailable commands:")
	fmt.Println("  - Type your question normally to chat")
	fmt.Println("  - 'exit', 'quit', 'bye', 'q' - End the conversation")
	fmt.Println("  - 'history' - View your conversation history")
	fmt.Println("\nTools: Math Calculator, Text Analysis, Date Offset, Weather")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println()

	rl, err := readline.New(colorCyan + "You: " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		if ctx.Err() != nil {
			fmt.Printf("\n%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}

		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Printf("\n%sExiting chat. Your conversation has been saved.%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		reply, err := sess.Handle(ctx, input)
		if err != nil {
			fmt.Printf("%sAn error occurred: %v%s\n", colorRed, err, colorReset)
			fmt.Println("Please try again or type 'exit' to quit.")
			fmt.Println()
			continue
		}

		if reply.Command {
			fmt.Println(reply.Text)
			fmt.Println()
			if reply.Ended {
				return nil
			}
			continue
		}

		fmt.Printf("%sAgent:%s %s\n\n", colorGreen, colorReset, reply.Text)
	}
}

// runExampleQueries executes the canned demonstration prompts in order.
func runExampleQueries(ctx context.Context, sess *session.Session) error {
	for i, example := range session.ExampleQueries() {
		fmt.Printf("\n%s--- Example %d: %s ---%s\n",
			colorBold, i+1, example.Title, colorReset)
		fmt.Printf("Query: %s\n\n", example.Text)

		reply, err := sess.Handle(ctx, example.Text)
		if err != nil {
			fmt.Printf("%sFAILED: %v%s\n", colorRed, err, colorReset)
			continue
		}
		fmt.Println(reply.Text)
	}
	fmt.Println()
	return nil
}
