package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/cli"
	"github.com/muhammadidrees/raseed/internal/config"
	"github.com/muhammadidrees/raseed/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file is optional; RASEED_* variables may also come from the shell
	_ = godotenv.Load()

	// If the user asked for help, avoid initializing the full app (which may prompt)
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" || a == "completion" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		path := config.DefaultConfigPath()
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			return 1
		}

		if err := logger.Setup(cfg.Log); err != nil {
			fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
			return 1
		}

		a, err := app.NewWithConfig(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			return 1
		}
		defer a.Close()
		a.ConfigPath = path
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
