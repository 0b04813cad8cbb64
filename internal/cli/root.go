package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/supplycheck/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the supplycheck release
const Version = "0.1.0"

// ErrVerificationFailed is returned when no card could be mapped through the
// supply index. The report has already been printed.
var ErrVerificationFailed = errors.New("verification failed")

var (
	cfgFile string
	verbose bool

	// configErr is set by initConfig when the config file cannot be used
	configErr error

	// cfgViper holds flags, environment and config file values
	cfgViper = newViper()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "supplycheck",
	Short: "Verify the card to supply type mapping of the master data",
	Long: `supplycheck fetches cards.json and cardSupplies.json, maps every card to
its supply type through cardSupplyId and reports how many cards were mapped
and how many fell back to "normal".

A sample of up to five non-normal cards is printed for manual inspection.
The run succeeds when at least one card was mapped.

Example:
  supplycheck
  supplycheck --verbose
  supplycheck --cards-url http://localhost:8080/master/cards.json`,
	Args:          cobra.NoArgs,
	RunE:          runVerify,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "supplycheck v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.supplycheck/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output on stderr")

	// Source flags
	flags.String("cards-url", defaults.Sources.CardsURL, "cards dataset URL")
	flags.String("supplies-url", defaults.Sources.SuppliesURL, "card supplies dataset URL")

	// HTTP flags
	flags.Duration("timeout", defaults.HTTP.RunTimeout, "overall run timeout")
	flags.Duration("http-timeout", defaults.HTTP.Timeout, "per request timeout")
	flags.String("ua", defaults.HTTP.UserAgent, "HTTP User-Agent")
	flags.Int64("max-bytes", defaults.HTTP.MaxBodyBytes, "max response bytes to read")
	flags.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	flags.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"output.verbose":       "verbose",
		"sources.cards_url":    "cards-url",
		"sources.supplies_url": "supplies-url",
		"http.run_timeout":     "timeout",
		"http.timeout":         "http-timeout",
		"http.user_agent":      "ua",
		"http.max_body_bytes":  "max-bytes",
		"http.http_proxy":      "http-proxy",
		"http.https_proxy":     "https-proxy",
	} {
		_ = cfgViper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// newViper returns a viper instance seeded with the built-in defaults and
// reading SUPPLYCHECK_* environment variables
func newViper() *viper.Viper {
	vp := viper.New()
	d := model.DefaultConfig()

	vp.SetDefault("sources.cards_url", d.Sources.CardsURL)
	vp.SetDefault("sources.supplies_url", d.Sources.SuppliesURL)
	vp.SetDefault("http.timeout", d.HTTP.Timeout)
	vp.SetDefault("http.run_timeout", d.HTTP.RunTimeout)
	vp.SetDefault("http.user_agent", d.HTTP.UserAgent)
	vp.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	vp.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	vp.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)
	vp.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	vp.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	vp.SetDefault("output.verbose", d.Output.Verbose)

	// SUPPLYCHECK_HTTP_TIMEOUT=10s maps to http.timeout
	vp.SetEnvPrefix("SUPPLYCHECK")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	return vp
}

// initConfig reads in config file and ENV variables
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil && cfgFile == "" {
		fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
	}

	configErr = readConfigFile(cfgViper, cfgFile, home)
	if configErr == nil && verbose && cfgViper.ConfigFileUsed() != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfgViper.ConfigFileUsed())
	}
}

// readConfigFile loads path, or config.yaml from ~/.supplycheck when path is
// empty. Only a missing default config file is not an error.
func readConfigFile(vp *viper.Viper, path, home string) error {
	if path != "" {
		vp.SetConfigFile(path)
	} else {
		if home == "" {
			return nil
		}
		vp.AddConfigPath(filepath.Join(home, ".supplycheck"))
		vp.SetConfigType("yaml")
		vp.SetConfigName("config")
	}

	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig(vp *viper.Viper) (*model.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg := model.DefaultConfig()
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.HTTP.RunTimeout <= 0 {
		cfg.HTTP.RunTimeout = 2 * time.Minute
	}
	return cfg, nil
}
