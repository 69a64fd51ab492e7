package metafit

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/app"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/biometrics"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/config"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/db"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/provider/metafit"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/service"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/session"
	"github.com/spf13/cobra"
)

// activeLocale is the locale of the last command run, used for top-level error text.
var activeLocale string

// env holds everything a command needs after configuration is resolved.
type env struct {
	cfg    config.Config
	db     *sql.DB
	locale string
	window int
	policy biometrics.Policy
	client *metafit.Client
	gate   *session.Gate
}

func loadConfig() (config.Config, error) {
	return config.Load(".env")
}

func withDB(run func(*sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return withConfigDB(cfg, run)
}

func withConfigDB(cfg config.Config, run func(*sql.DB) error) error {
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// withEnv resolves configuration with precedence flag > environment > stored
// setting > default, then opens the session and API client.
func withEnv(cmd *cobra.Command, run func(*env) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return withConfigDB(cfg, func(sqldb *sql.DB) error {
		stored, err := service.ListConfig(sqldb)
		if err != nil {
			return err
		}
		e := &env{cfg: cfg, db: sqldb}
		e.locale = config.First(localeFlag, cfg.Locale, stored[service.ConfigLocale], i18n.DefaultLocale)
		activeLocale = e.locale

		e.window = config.DefaultPlanWindowDays
		if cfg.PlanWindowDays > 0 {
			e.window = cfg.PlanWindowDays
		} else if v, ok, err := service.GetConfigInt(sqldb, service.ConfigPlanWindowDays); err != nil {
			return err
		} else if ok {
			e.window = v
		}

		ageMin, ageMax := cfg.AgeMin, cfg.AgeMax
		if ageMin == 0 {
			if ageMin, _, err = service.GetConfigInt(sqldb, service.ConfigAgeMin); err != nil {
				return err
			}
		}
		if ageMax == 0 {
			if ageMax, _, err = service.GetConfigInt(sqldb, service.ConfigAgeMax); err != nil {
				return err
			}
		}
		if e.policy, err = biometrics.DefaultPolicy().WithAgeRange(ageMin, ageMax); err != nil {
			return err
		}

		e.client = &metafit.Client{
			BaseURL:    config.First(apiURL, cfg.APIURL, stored[service.ConfigAPIURL], metafit.DefaultBaseURL),
			HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		}
		if verbose || cfg.Verbose {
			e.client.Logger = log.New(cmd.ErrOrStderr(), "metafit: ", log.LstdFlags)
		}

		e.gate, err = session.Open(commandContext(cmd), &service.TokenStore{DB: sqldb})
		if err != nil {
			return err
		}
		return run(e)
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func resolveDBPath(cfg config.Config) (string, error) {
	if p := config.First(dbPath, cfg.DBPath); p != "" {
		return p, nil
	}
	return app.DefaultDBPath()
}
