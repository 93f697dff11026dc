package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlebrun/sailcast/internal/catalog"
	"github.com/mlebrun/sailcast/internal/meteo"
	"github.com/mlebrun/sailcast/internal/planner"
	"github.com/mlebrun/sailcast/internal/tide"
	"github.com/mlebrun/sailcast/internal/ui"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sailcast",
	Short: "Nautical activity recommendations for Châtelaillon-Plage",
	Long: `Evaluates live wind, weather and tide conditions against each
family member's activity profile and suggests what to sail, when.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		p := tea.NewProgram(ui.NewModel(app.Catalog, app.Planner), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sailcast.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sailcast")

		viper.SetDefault("catalog.path", filepath.Join(home, ".sailcast", "catalog.json"))
		viper.SetDefault("tides.db", filepath.Join(home, ".sailcast", "tides.db"))
	}

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.refresh", "*/15 * * * *")

	viper.SetEnvPrefix("sailcast")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// App bundles the wired service graph for a command run
type App struct {
	Catalog *catalog.Cache
	Tides   *tide.Store
	Planner *planner.Service
}

// Close releases the tide database
func (a *App) Close() {
	if a.Tides != nil {
		a.Tides.Close()
	}
}

// buildApp wires the tide store, catalog, weather client and planning
// service from the active configuration.
func buildApp() (*App, error) {
	store, err := tide.Open(viper.GetString("tides.db"))
	if err != nil {
		return nil, fmt.Errorf("opening tide database: %w", err)
	}

	cache := catalog.NewCache(catalog.FileSource(viper.GetString("catalog.path")))
	weather := meteo.NewOpenMeteoClient()
	svc := planner.NewService(cache, weather, store, log.Default())

	return &App{Catalog: cache, Tides: store, Planner: svc}, nil
}
