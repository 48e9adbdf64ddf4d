package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/autointelli/intake/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Backend BackendConfig
	Data    DataConfig
	Log     LogConfig
}

// BackendConfig holds the intake backend endpoints.
type BackendConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaterialPath string // full material form, both entry modes
	StandardPath string // dimensioned-material-only form
	CatalogPath  string // Torni catalog-only form
	StatusPath   string // dashboard status update prefix, page ID appended
}

// DataConfig holds the reference document sources. Each is an http(s) URL or
// a local file path; a relative path starting with "/" is resolved against
// the backend base URL.
type DataConfig struct {
	MasterListSource  string
	DimensionsSource  string
	SolicitudesSource string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stderr or file path; never stdout, the terminal UI owns it
}

// Variant is one configured face of the intake application: which endpoint
// it submits to, which entry modes it offers, and whether the provider is
// user-selectable.
type Variant struct {
	Name          string
	Title         string
	SubmitPath    string
	FixedProvider string
	Standard      bool
	Catalog       bool
	Dashboard     bool
}

// Load reads configuration from the given file, or from intake.toml in the
// working directory when path is empty, with INTAKE_* environment overrides.
// A missing config file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("intake")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:      v.GetString("backend.base_url"),
			Timeout:      v.GetDuration("backend.timeout"),
			MaterialPath: v.GetString("backend.material_path"),
			StandardPath: v.GetString("backend.standard_path"),
			CatalogPath:  v.GetString("backend.catalog_path"),
			StatusPath:   v.GetString("backend.status_path"),
		},
		Data: DataConfig{
			MasterListSource:  v.GetString("data.master_list"),
			DimensionsSource:  v.GetString("data.dimensions"),
			SolicitudesSource: v.GetString("data.solicitudes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:5000"
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Backend.MaterialPath == "" {
		cfg.Backend.MaterialPath = "/submit-request"
	}
	if cfg.Backend.StandardPath == "" {
		cfg.Backend.StandardPath = "/solicitudes/submit_standard"
	}
	if cfg.Backend.CatalogPath == "" {
		cfg.Backend.CatalogPath = "/accesorios/submit_torni"
	}
	if cfg.Backend.StatusPath == "" {
		cfg.Backend.StatusPath = "/compras/update_solicitud_status"
	}
	if cfg.Data.MasterListSource == "" {
		cfg.Data.MasterListSource = "/static/data/torni_items_masterlist.json"
	}
	if cfg.Data.DimensionsSource == "" {
		cfg.Data.DimensionsSource = "/static/data/standard_dimensions_by_unit.json"
	}
	if cfg.Data.SolicitudesSource == "" {
		cfg.Data.SolicitudesSource = "/compras/api/solicitudes"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "intake.log"
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	for _, p := range []string{
		c.Backend.MaterialPath, c.Backend.StandardPath,
		c.Backend.CatalogPath, c.Backend.StatusPath,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("backend path %q must start with /", p)
		}
	}
	return nil
}

// MasterListSource resolves the master list source against the base URL.
func (c *Config) MasterListSource() string {
	return c.resolveSource(c.Data.MasterListSource)
}

// DimensionsSource resolves the dimension table source against the base URL.
func (c *Config) DimensionsSource() string {
	return c.resolveSource(c.Data.DimensionsSource)
}

// SolicitudesSource resolves the dashboard rows source against the base URL.
func (c *Config) SolicitudesSource() string {
	return c.resolveSource(c.Data.SolicitudesSource)
}

func (c *Config) resolveSource(source string) string {
	if strings.HasPrefix(source, "/") {
		return strings.TrimRight(c.Backend.BaseURL, "/") + source
	}
	return source
}

// VariantNames lists the variants Variant accepts.
func VariantNames() []string {
	return []string{"material", "standard", "torni", "compras"}
}

// Variant returns the named variant strategy wired to this configuration.
func (c *Config) Variant(name string) (Variant, error) {
	switch name {
	case "material":
		return Variant{
			Name:       name,
			Title:      "Solicitud de Material",
			SubmitPath: c.Backend.MaterialPath,
			Standard:   true,
			Catalog:    true,
		}, nil
	case "standard":
		return Variant{
			Name:       name,
			Title:      "Solicitud Estándar",
			SubmitPath: c.Backend.StandardPath,
			Standard:   true,
		}, nil
	case "torni":
		return Variant{
			Name:          name,
			Title:         "Accesorios Torni",
			SubmitPath:    c.Backend.CatalogPath,
			FixedProvider: domain.CatalogProvider,
			Catalog:       true,
		}, nil
	case "compras":
		return Variant{
			Name:      name,
			Title:     "Dashboard de Compras",
			Dashboard: true,
		}, nil
	}
	return Variant{}, fmt.Errorf("unknown variant %q (have %s)", name, strings.Join(VariantNames(), ", "))
}
