package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"relocation-admin-api/backend"
	"relocation-admin-api/prefs"
)

// Config holds every environment-provided setting. The demo credentials
// gate the dashboard for demo deployments; they are not an account system.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	BackendURL   string `envconfig:"BACKEND_URL" default:"http://localhost:8088"`
	PrefsDBPath  string `envconfig:"PREFS_DB_PATH" default:"relocation_admin.db"`
	JWTSecretKey string `envconfig:"JWT_SECRET" default:"relocation_admin_super_secret_2024"`
	DemoEmail    string `envconfig:"DEMO_LOGIN_EMAIL" default:"john@tmc.no"`
	DemoPassword string `envconfig:"DEMO_LOGIN_PASSWORD" default:"demo123"`
	DemoName     string `envconfig:"DEMO_LOGIN_NAME" default:"John"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

var (
	// App is the loaded configuration.
	App Config

	// JWTSecret signs session tokens.
	JWTSecret []byte

	// Backend talks to the external relocation backend.
	Backend *backend.Client

	// Prefs remembers UI preferences across restarts.
	Prefs *prefs.Store

	// Log is the shared application logger.
	Log = logrus.New()
)

// Load reads the environment and wires up the shared collaborators.
func Load() error {
	if err := envconfig.Process("", &App); err != nil {
		return errors.Wrap(err, "read environment")
	}
	JWTSecret = []byte(App.JWTSecretKey)

	if level, err := logrus.ParseLevel(App.LogLevel); err == nil {
		Log.SetLevel(level)
	}

	Backend = backend.New(App.BackendURL, Log)

	store, err := prefs.Open(App.PrefsDBPath)
	if err != nil {
		return err
	}
	Prefs = store

	Log.WithFields(logrus.Fields{
		"backend": App.BackendURL,
		"prefs":   App.PrefsDBPath,
	}).Info("configuration loaded")
	return nil
}
