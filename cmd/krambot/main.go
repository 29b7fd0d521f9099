// Copyright 2026 Krambot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/krambot/krambot"
	"github.com/krambot/krambot/catalog"
	"github.com/krambot/krambot/config"
	"github.com/krambot/krambot/core"
	historybadger "github.com/krambot/krambot/history/badger"
	"github.com/krambot/krambot/match"
)

func main() {
	app := &cli.App{
		Name:  "krambot",
		Usage: "Conversational store locator assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: config.yaml in . or ./configs)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Interactive chat session with the assistant",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "User handle identifying the conversation",
						Value:   "local",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Search the store catalog directly",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stores",
						Usage: "Path to the JSON store catalog (overrides config)",
					},
					&cli.StringFlag{
						Name:  "brand",
						Usage: "Store chain name",
					},
					&cli.StringFlag{
						Name:  "city",
						Usage: "City or settlement",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "Oblast or district",
					},
					&cli.StringFlag{
						Name:  "address",
						Usage: "Street-level location",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   match.DefaultLimit,
					},
				},
			},
			{
				Name:      "history",
				Usage:     "Search past conversation messages",
				ArgsUsage: "<query>",
				Action:    historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to BadgerDB database directory (overrides config)",
					},
					&cli.StringFlag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "User handle identifying the conversation",
						Value:   "local",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of messages",
						Value:   20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := krambot.NewAssistant(cfg)
	if err != nil {
		return fmt.Errorf("failed to start assistant: %w", err)
	}
	defer assistant.Close()

	user := c.String("user")

	fmt.Println("Krambot chat. Commands: /find <назва>, /reset, /quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return nil

		case line == "/reset":
			if err := assistant.ResetHistory(ctx, user); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println("Історію розмови очищено.")

		case strings.HasPrefix(line, "/find"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "/find"))
			if raw == "" {
				fmt.Println("Вкажіть назву магазину: /find АТБ")
				continue
			}
			printMatches(assistant.SearchStores(core.StoreQuery{Brand: raw}, match.DefaultLimit),
				assistant.SuggestBrands(raw, 3))

		default:
			reply, err := assistant.Respond(ctx, user, line)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println(reply)
		}
	}
	return scanner.Err()
}

func searchCommand(c *cli.Context) error {
	query := core.StoreQuery{
		Brand:   c.String("brand"),
		City:    c.String("city"),
		Region:  c.String("region"),
		Address: c.String("address"),
	}
	if !query.Active() {
		return fmt.Errorf("at least one of --brand, --city or --address is required")
	}

	storesPath := c.String("stores")
	if storesPath == "" {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		storesPath = cfg.Catalog.Path
	}

	cat := catalog.New(storesPath)

	ranker, err := match.NewRanker(cat)
	if err != nil {
		return err
	}
	matcher, err := match.NewEntityMatcher(cat)
	if err != nil {
		return err
	}

	var suggestions []string
	if query.Brand != "" {
		suggestions = matcher.SuggestBrands(query.Brand, 3)
	} else if query.City != "" {
		suggestions = matcher.SuggestCities(query.City, 3)
	}

	printMatches(ranker.Search(query, c.Int("limit")), suggestions)
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	dbPath := c.String("db")
	if dbPath == "" {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		dbPath = cfg.Database.Path
	}

	backend, err := historybadger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := historybadger.NewMessageRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	user := core.IDFromHandle(c.String("user"))
	messages, err := repo.SearchMessages(ctx, user, query, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("Нічого не знайдено.")
		return nil
	}

	for _, message := range messages {
		speaker := "you"
		if message.Speaker == core.SpeakerAssistant {
			speaker = "bot"
		}
		fmt.Printf("[%s] %s: %s\n", message.Timestamp.Format("2006-01-02 15:04"), speaker, message.Contents)
	}
	return nil
}

func printMatches(matches []core.StoreMatch, suggestions []string) {
	if len(matches) == 0 {
		fmt.Println("Нічого не знайдено.")
		if len(suggestions) > 0 {
			fmt.Printf("Можливо, ви мали на увазі: %s\n", strings.Join(suggestions, ", "))
		}
		return
	}
	for i, m := range matches {
		fmt.Printf("%d. %s [%.0f]\n", i+1, krambot.FormatStore(m.Store), m.Score)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
