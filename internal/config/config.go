package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Notebooks   NotebooksConfig   `mapstructure:"notebooks"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Annotations AnnotationsConfig `mapstructure:"annotations"`
	Templates   TemplatesConfig   `mapstructure:"templates"`
	Outputs     OutputsConfig     `mapstructure:"outputs"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

type NotebooksConfig struct {
	Directories []string `mapstructure:"directories" validate:"min=1,dive,required"`
}

type SchedulerConfig struct {
	Policy   string `mapstructure:"policy" validate:"oneof=classic accelerated"`
	Location string `mapstructure:"location" validate:"omitempty,timezone"`
}

// LoadLocation returns the calendar used for due dates, the local one when unset.
func (c SchedulerConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", c.Location, err)
	}
	return location, nil
}

type AnnotationsConfig struct {
	Encoding string `mapstructure:"encoding" validate:"oneof=tagged compact"`
}

type TemplatesConfig struct {
	DeckTemplate string `mapstructure:"deck_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	DeckDirectory string `mapstructure:"deck_directory"`
}

type DatabaseConfig struct {
	Enabled         bool              `mapstructure:"enabled"`
	Host            string            `mapstructure:"host" validate:"required_if=Enabled true"`
	Port            int               `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Enabled true"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/recurrence")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("notebooks.directories", []string{"flashcards"})
	v.SetDefault("scheduler.policy", "classic")
	v.SetDefault("scheduler.location", "")
	v.SetDefault("annotations.encoding", "tagged")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.deck_template", "")
	v.SetDefault("outputs.deck_directory", "outputs")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "recurrence")
	v.SetDefault("database.username", "user")

	// Bind database password to environment variable only (not from config file)
	if err := v.BindEnv("database.password", "RECURRENCE_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind RECURRENCE_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration file, or the default locations when configFile is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
