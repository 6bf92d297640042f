package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vidgrab/internal/api"
	"vidgrab/internal/dirs"
	"vidgrab/internal/model"
)

// Viper keys.
const (
	KeyServer  = "server"
	KeyOutDir  = "out_dir"
	KeyVerbose = "verbose"
	KeyNoUI    = "no_ui"
)

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Ensure base directories exist
	_ = dirs.EnsureAll()

	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VIDGRAB_*, optionally from a .env file in the
	// working directory or the config dir. Real env vars win.
	if files := envFiles(); len(files) > 0 {
		_ = godotenv.Load(files...)
	}
	viper.SetEnvPrefix("VIDGRAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyServer, api.DefaultBaseURL)
	viper.SetDefault(KeyOutDir, dirs.DefaultOutputDir())

	// Bind root persistent flags to Viper keys
	pf := root.PersistentFlags()
	_ = viper.BindPFlag(KeyServer, pf.Lookup("server"))
	_ = viper.BindPFlag(KeyOutDir, pf.Lookup("out-dir"))
	_ = viper.BindPFlag(KeyVerbose, pf.Lookup("verbose"))
	_ = viper.BindPFlag(KeyNoUI, pf.Lookup("no-ui"))

	// Read config file if present (ignore not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

func envFiles() []string {
	var files []string
	for _, f := range []string{".env", envFileInConfigDir()} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}
	return files
}

func envFileInConfigDir() string {
	d, err := dirs.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(d, ".env")
}

// Options resolves the effective runtime options (flag > env/config > default).
func Options() model.CLIOptions {
	out := viper.GetString(KeyOutDir)
	if out == "" {
		out = "."
	}
	return model.CLIOptions{
		Server:  strings.TrimSpace(viper.GetString(KeyServer)),
		OutDir:  filepath.Clean(out),
		Verbose: viper.GetBool(KeyVerbose),
		NoUI:    viper.GetBool(KeyNoUI),
	}
}
