package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Pre-answered prompts
	pathFlag   string
	modeFlag   string
	pickFolder bool

	// Scanning
	respectGitignore bool

	// Output
	outputDir       string
	copyToClipboard bool
	previewLimit    int

	// Diagnostics
	logLevel string
	noColor  bool

	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "filelist",
	Short: "filelist writes the file names of a folder to a timestamped text report.",
	Long: `filelist asks for a folder and a scan mode, lists the files directly inside
the folder or in the whole tree, and saves the list as
files_list_<date>_<time>[_recursive].txt inside that folder.`,
	Version: version,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()
		if settings.NoColor {
			color.NoColor = true
		}

		log := newConsoleLogger(os.Stderr, settings.LogLevel)
		log.Debugf("settings: %+v", settings)

		if err := newShell(os.Stdin, os.Stdout, log, settings).run(); err != nil {
			log.Debugf("run finished with error: %v", err)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/filelist/config.toml)")

	rootCmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Folder to scan (skips the path prompt)")
	viper.BindPFlag("path", rootCmd.Flags().Lookup("path"))
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", `Scan mode: "1" current folder only, "2" recursive (skips the mode prompt)`)
	viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	rootCmd.Flags().BoolVar(&pickFolder, "pick", false, "Choose the folder with an interactive fuzzy finder")
	viper.BindPFlag("pick", rootCmd.Flags().Lookup("pick"))

	rootCmd.Flags().BoolVar(&respectGitignore, "gitignore", false, "Leave out files matched by the folder's .gitignore")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write the report here instead of the scanned folder")
	viper.BindPFlag("output_dir", rootCmd.Flags().Lookup("output-dir"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Also copy the report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().IntVar(&previewLimit, "preview", defaultPreviewLimit, "Number of names shown on screen (-1 for all)")
	viper.BindPFlag("preview_limit", rootCmd.Flags().Lookup("preview"))

	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Diagnostic level: debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))

	setDefaults(viper.GetViper())
}

// setDefaults registers the value of every key when no flag, env var or
// config entry sets it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "")
	v.SetDefault("mode", "")
	v.SetDefault("pick", false)
	v.SetDefault("gitignore", false)
	v.SetDefault("output_dir", "")
	v.SetDefault("clipboard", false)
	v.SetDefault("preview_limit", defaultPreviewLimit)
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "filelist"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("FILELIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match FILELIST_*

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
	}
}

// loadSettings snapshots the global viper instance.
func loadSettings() Settings {
	return settingsFrom(viper.GetViper())
}

func settingsFrom(v *viper.Viper) Settings {
	return Settings{
		Path:             v.GetString("path"),
		Mode:             v.GetString("mode"),
		Pick:             v.GetBool("pick"),
		RespectGitignore: v.GetBool("gitignore"),
		Clipboard:        v.GetBool("clipboard"),
		OutputDir:        v.GetString("output_dir"),
		PreviewLimit:     v.GetInt("preview_limit"),
		LogLevel:         v.GetString("log_level"),
		NoColor:          v.GetBool("no_color"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
