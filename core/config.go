package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	SheetsConfig struct {
		SpreadsheetID   string
		CredentialsFile string
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
		// admin credentials, only used to create the database and app user
		AdminUser     string
		AdminPassword string
	}

	DashboardConfig struct {
		ExamDate     time.Time // zero: today + ExamLeadDays
		ExamLeadDays int
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Backend      string

		Server    ServerConfig
		Sheets    SheetsConfig
		Database  DatabaseConfig
		Dashboard DashboardConfig
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// NewConfig reads the configuration from the environment, after loading `config/.env.<env>` if it exists.
func NewConfig() *Config {
	vpr := viper.New()

	// defaults
	vpr.SetTypeByDefaultValue(true)
	vpr.SetDefault("debug", true)
	vpr.SetDefault("appName", "Somo")
	vpr.SetDefault("build", "develop")
	vpr.SetDefault("rollbarToken", "")
	vpr.SetDefault("storage.backend", BackendSheets)
	vpr.SetDefault("server.address", ":8080")
	vpr.SetDefault("server.debugHost", ":4000")
	vpr.SetDefault("server.shutdownTimeout", 5*time.Second)
	vpr.SetDefault("sheets.spreadsheetID", "")
	vpr.SetDefault("sheets.credentialsFile", "credentials.json")
	vpr.SetDefault("database.engine", "postgres")
	vpr.SetDefault("database.host", "localhost")
	vpr.SetDefault("database.port", "5432")
	vpr.SetDefault("database.name", "somo")
	vpr.SetDefault("database.user", "somo")
	vpr.SetDefault("database.password", "")
	vpr.SetDefault("database.disableTLS", true)
	vpr.SetDefault("database.adminUser", "")
	vpr.SetDefault("database.adminPassword", "")
	vpr.SetDefault("dashboard.examDate", "")
	vpr.SetDefault("dashboard.examLeadDays", 60)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		vpr.SetDefault("testMode", true)
	}
	vpr.SetEnvPrefix(env)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	vpr.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        vpr.GetString("build"),
		AppName:      vpr.GetString("appName"),
		Debug:        vpr.GetBool("debug"),
		TestMode:     vpr.GetBool("testMode"),
		RollbarToken: vpr.GetString("rollbarToken"),
		Backend:      strings.ToLower(vpr.GetString("storage.backend")),
		Server: ServerConfig{
			Address:         vpr.GetString("server.address"),
			DebugHost:       vpr.GetString("server.debugHost"),
			ShutdownTimeout: vpr.GetDuration("server.shutdownTimeout"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   vpr.GetString("sheets.spreadsheetID"),
			CredentialsFile: vpr.GetString("sheets.credentialsFile"),
		},
		Database: DatabaseConfig{
			Engine:        vpr.GetString("database.engine"),
			Host:          vpr.GetString("database.host"),
			Port:          vpr.GetString("database.port"),
			Name:          vpr.GetString("database.name"),
			User:          vpr.GetString("database.user"),
			Password:      vpr.GetString("database.password"),
			DisableTLS:    vpr.GetBool("database.disableTLS"),
			AdminUser:     vpr.GetString("database.adminUser"),
			AdminPassword: vpr.GetString("database.adminPassword"),
		},
		Dashboard: DashboardConfig{
			ExamLeadDays: vpr.GetInt("dashboard.examLeadDays"),
		},
	}
	if examDate := vpr.GetString("dashboard.examDate"); examDate != "" {
		if d, err := ParseDate(examDate); err == nil {
			conf.Dashboard.ExamDate = d
		} else {
			log.Printf("config: ignoring dashboard.examDate %q: %v", examDate, err)
		}
	}
	return conf
}
