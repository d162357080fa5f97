package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facevault/backup"
	"facevault/credential"
	"facevault/faceid"
	"facevault/gate"
	"facevault/session"
	"facevault/storage"
	bboltstorage "facevault/storage/bbolt"
	"facevault/storage/memory"
	sqlitestorage "facevault/storage/sqlite"
	"facevault/vault"
)

var cfgFile string

// app wires the components every command works through. It is built in the
// persistent pre-run and torn down in the persistent post-run.
type appContext struct {
	store     storage.Store
	closeFn   func() error
	creds     *credential.Credentials
	templates *faceid.Templates
	sessions  *session.Manager
	gate      *gate.Gate
	vault     *vault.Vault
	backups   *backup.Service
	enroller  *faceid.Enroller
	verifier  *faceid.Verifier
	updater   *faceid.Updater
}

var app *appContext

var rootCmd = &cobra.Command{
	Use:   "facevault",
	Short: "FaceVault is a face-gated local password vault",
	Long: `FaceVault keeps a local list of name/secret pairs behind a master
password and a facial-biometric check. All state lives on this machine;
nothing is sent anywhere.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.facevault/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for persistent data")
	rootCmd.PersistentFlags().String("store", "", "storage backend: bbolt, sqlite, or memory")
	rootCmd.PersistentFlags().String("frame", "", "path to the capture frame file (the camera stand-in)")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("frame", rootCmd.PersistentFlags().Lookup("frame"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".facevault"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("FACEVAULT")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("store", "bbolt")
	viper.SetDefault("threshold", faceid.MatchThreshold)
	viper.SetDefault("session_duration", session.DefaultDuration.String())
	viper.SetDefault("listen", "127.0.0.1:8470")

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".facevault"
	}
	return filepath.Join(home, ".facevault")
}

func setupApp(_ *cobra.Command, _ []string) error {
	dataDir := viper.GetString("data_dir")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	var (
		store   storage.Store
		closeFn func() error
	)
	switch backend := viper.GetString("store"); backend {
	case "bbolt":
		s, err := bboltstorage.NewStoreFromFile(filepath.Join(dataDir, "facevault.db"), nil)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		store, closeFn = s, s.Close
	case "sqlite":
		s, err := sqlitestorage.NewStore(filepath.Join(dataDir, "facevault.sqlite"))
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		store, closeFn = s, s.Close
	case "memory":
		store, closeFn = memory.NewStore(), func() error { return nil }
	default:
		return fmt.Errorf("unknown storage backend %q", backend)
	}

	creds := credential.New(store)
	templates := faceid.NewTemplates(store)
	sessions := session.NewManager(store)
	enroller := faceid.NewEnroller(templates)

	app = &appContext{
		store:     store,
		closeFn:   closeFn,
		creds:     creds,
		templates: templates,
		sessions:  sessions,
		gate:      gate.New(creds, templates, sessions),
		vault:     vault.New(store),
		backups:   backup.NewService(store),
		enroller:  enroller,
		verifier: faceid.NewVerifier(templates, sessions,
			faceid.WithThreshold(viper.GetFloat64("threshold")),
			faceid.WithSessionDuration(sessionDuration())),
		updater: faceid.NewUpdater(creds, enroller),
	}
	return nil
}

func teardownApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.closeFn()
}

func sessionDuration() time.Duration {
	d, err := time.ParseDuration(viper.GetString("session_duration"))
	if err != nil || d <= 0 {
		return session.DefaultDuration
	}
	return d
}
