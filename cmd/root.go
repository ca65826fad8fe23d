package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/rankings"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 _               _
	| |__   ___  ___| |_ __ _  __ _ _ __ ___   ___  ___
	| '_ \ / _ \/ __| __/ _` + "`" + ` |/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \/ __|
	| |_) |  __/\__ \ || (_| | (_| | | | | | |  __/\__ \
	|_.__/ \___||___/\__\__, |\__,_|_| |_| |_|\___||___/
	                    |___/
`
	defaultCatalogFile = "docs/data/merged_games.json"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bestgames",
	Short: "The best games of all time, filtered your way.",
	Long: LOGO + `bestgames builds a catalog of the best games of all time from the Rock Paper Shotgun, IGN and PC Gamer lists,
enriches it with Steam, ProtonDB and RAWG data, and lets you browse it from the command line or a web page.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bestgames.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// setDefaults registers every config key so SafeWriteConfig writes a
// complete file and AutomaticEnv can resolve them.
func setDefaults() {
	viper.SetDefault("rawg.apikey", "")
	viper.SetDefault("scrape.useragent", "")
	viper.SetDefault("scrape.threshold", 0.90)
	viper.SetDefault("scrape.delay", 2*time.Second)
	viper.SetDefault("scrape.ratelimit", time.Second)
	viper.SetDefault("scrape.cachettl", 7*24*time.Hour)
	viper.SetDefault("scrape.sources", rankings.DefaultSources())
	viper.SetDefault("scrape.specialcases", map[string]string{})
	viper.SetDefault("cache.path", "")
	viper.SetDefault("catalog.file", defaultCatalogFile)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".bestgames")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BESTGAMES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.bestgames.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
