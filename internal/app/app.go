package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/muhammadidrees/raseed/internal/config"
	"github.com/muhammadidrees/raseed/internal/crypto"
	"github.com/muhammadidrees/raseed/internal/db"
	"github.com/muhammadidrees/raseed/internal/repository"
	"github.com/muhammadidrees/raseed/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	DB         *db.DB

	// Repositories
	Drafts       *repository.DraftStore
	InvoiceRepo  repository.InvoiceDataRepository
	PersonalRepo repository.PersonalInfoRepository
	CompanyRepo  repository.CompanyInfoRepository
	BankRepo     repository.BankInfoRepository

	// Services
	InvoiceService service.InvoiceService
}

// NewWithConfig creates an App with a provided config.
// It resolves the encryption key, opens and migrates the database,
// then wires repositories and services.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return Wire(cfg, database), nil
}

// Wire builds repositories and services on an open database
func Wire(cfg *config.Config, database *db.DB) *App {
	drafts := repository.NewDraftStore(database)
	invoiceRepo := repository.NewInvoiceDataRepo(drafts)
	personalRepo := repository.NewPersonalInfoRepo(drafts)
	companyRepo := repository.NewCompanyInfoRepo(drafts)
	bankRepo := repository.NewBankInfoRepo(drafts)

	invoiceService := service.NewInvoiceService(
		invoiceRepo,
		personalRepo,
		companyRepo,
		bankRepo,
		drafts,
		service.Options{
			TaxRate:   cfg.TaxRate(),
			OutputDir: cfg.Invoice.OutputDir,
			Presets:   cfg.Companies,
		},
	)

	return &App{
		Config:         cfg,
		ConfigPath:     config.DefaultConfigPath(),
		DB:             database,
		Drafts:         drafts,
		InvoiceRepo:    invoiceRepo,
		PersonalRepo:   personalRepo,
		CompanyRepo:    companyRepo,
		BankRepo:       bankRepo,
		InvoiceService: invoiceService,
	}
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("no terminal to prompt for a password: set %s", crypto.EnvKey)
	}

	fmt.Println()
	fmt.Println("Your invoice drafts will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig validates and saves the configuration, then rewires the
// services so new settings such as the tax rate apply immediately
func (a *App) SaveConfig() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := a.Config.Save(a.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path := a.ConfigPath
	*a = *Wire(a.Config, a.DB)
	a.ConfigPath = path
	return nil
}
