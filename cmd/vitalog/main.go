package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mfeller/vitalog/internal/chat"
	"github.com/mfeller/vitalog/internal/diet"
	"github.com/mfeller/vitalog/internal/fitness"
	"github.com/mfeller/vitalog/internal/providers"
	"github.com/mfeller/vitalog/internal/settings"
	"github.com/mfeller/vitalog/internal/storage"
	"github.com/mfeller/vitalog/internal/tracker"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx := context.Background()

	fs := flag.NewFlagSet("vitalog", flag.ExitOnError)
	dbFlag := fs.String("db", "", "Path to the data file (default: user config dir)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	dbPath := *dbFlag
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			log.Fatalf("failed to determine data path: %v", err)
		}
	}

	store, err := storage.Open(ctx, dbPath)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	app := newApp(store)
	app.run(ctx)
}

// app wires the services together and holds REPL session state.
type app struct {
	store    *storage.Store
	settings *settings.Service
	tracker  *tracker.Service
	diet     *diet.Service
	chat     *chat.Service

	// currentConv is the conversation plain input is sent to.
	currentConv string
}

func newApp(store *storage.Store) *app {
	settingsSvc := settings.NewService(store)
	cfg := &envSettings{inner: settingsSvc}

	chatSvc := chat.NewService(
		store,
		providers.NewSettingsClient(cfg),
		cfg,
		fitness.NewContextProvider(store),
		nil,
	)

	return &app{
		store:    store,
		settings: settingsSvc,
		tracker:  tracker.NewService(store),
		diet:     diet.NewService(store),
		chat:     chatSvc,
	}
}

func (a *app) run(ctx context.Context) {
	log.Printf("Data file: %s", a.store.Path())
	printWelcome()

	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		if strings.HasPrefix(line, "/") {
			a.dispatch(ctx, line)
			continue
		}

		a.send(ctx, line)
	}
}

func defaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "vitalog", "data.db"), nil
}
