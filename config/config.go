package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
	// SiteURL is the externally reachable base URL, used in magic-link emails.
	SiteURL string `yaml:"site_url" json:"site_url"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

// StoreConfig holds storefront level settings that are not admin editable.
type StoreConfig struct {
	// AdminEmail is promoted to the admin role on startup if present.
	AdminEmail string `yaml:"admin_email" json:"admin_email"`
	// WhatsappPhone is the order destination number in international format.
	WhatsappPhone string `yaml:"whatsapp_phone" json:"whatsapp_phone"`
	Currency      string `yaml:"currency" json:"currency"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system" json:"system"`
	Web      WebConfig   `yaml:"web" json:"web"`
	Database DBConfig    `yaml:"database" json:"database"`
	Logger   LogConfig   `yaml:"logger" json:"logger"`
	Smtp     SmtpConfig  `yaml:"smtp" json:"smtp"`
	Store    StoreConfig `yaml:"store" json:"store"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "TheoAfrique",
		Location: "Africa/Brazzaville",
		Workdir:  "/var/theoafrique",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    1989,
		Secret:  "9b6de5cc-theo-afrique-b712-7786",
		SiteURL: "http://localhost:1989",
	},
	Database: DBConfig{
		Type:     "sqlite",
		Name:     "theoafrique",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/theoafrique/theoafrique.log",
	},
	Smtp: SmtpConfig{
		Host: "localhost",
		Port: 1025,
		From: "dev@revuecg.com",
	},
	Store: StoreConfig{
		AdminEmail:    "admin@example.com",
		WhatsappPhone: "+242066811931",
		Currency:      "CFA",
	},
}

func setEnvValue(name string, f func(v string)) {
	if value := os.Getenv(name); value != "" {
		f(value)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	if p, err := strconv.ParseInt(value, 10, 64); err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("THEO_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("THEO_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })
	setEnvValue("THEO_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("THEO_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("THEO_WEB_SITE_URL", func(v string) { cfg.Web.SiteURL = v })
	setEnvInt64Value("THEO_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("THEO_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("THEO_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("THEO_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("THEO_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("THEO_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("THEO_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("THEO_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvInt64Value("THEO_SMTP_PORT", func(v int64) { cfg.Smtp.Port = int(v) })
	setEnvValue("THEO_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("THEO_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("THEO_SMTP_FROM", func(v string) { cfg.Smtp.From = v })
	setEnvValue("THEO_ADMIN_EMAIL", func(v string) { cfg.Store.AdminEmail = v })
	setEnvValue("THEO_WHATSAPP_PHONE", func(v string) { cfg.Store.WhatsappPhone = v })

	return cfg
}
