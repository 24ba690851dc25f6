package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/config"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/logging"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries settings shared by every subcommand
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "photoprep",
		Short: "Room classifier and clutter recommendations for listing photos",
		Long: `photoprep reads object detections for a listing photo, decides which room
it shows and lists the items to remove or restage before the shoot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.photoprep.yaml)")
	flags.Bool("debug", false, "enable debug logging on stderr")
	flags.Float64("min-confidence", service.DefaultMinConfidence, "base admission threshold")
	flags.Float64("priority-confidence", service.DefaultPriorityConfidence, "admission threshold for priority classes")
	flags.Float64("room-score-floor", service.DefaultRoomScoreFloor, "minimum winning room score")
	flags.Float64("room-margin-ratio", service.DefaultRoomMarginRatio, "how far the winner must lead the runner-up")
	flags.StringP("format", "f", "text", "output format: text, json or yaml")

	c.v.BindPFlag("debug", flags.Lookup("debug"))
	c.v.BindPFlag("engine.min_confidence", flags.Lookup("min-confidence"))
	c.v.BindPFlag("engine.priority_confidence", flags.Lookup("priority-confidence"))
	c.v.BindPFlag("engine.room_score_floor", flags.Lookup("room-score-floor"))
	c.v.BindPFlag("engine.room_margin_ratio", flags.Lookup("room-margin-ratio"))
	c.v.BindPFlag("format", flags.Lookup("format"))

	rootCmd.AddCommand(
		c.newAnalyzeCmd(),
		c.newClassifyCmd(),
		c.newRulesCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func (c *cli) initConfig() error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		c.v.AddConfigPath(home)
		c.v.SetConfigType("yaml")
		c.v.SetConfigName(".photoprep")
	}

	c.v.SetEnvPrefix("PHOTOPREP")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && c.cfgFile != "" {
			return fmt.Errorf("failed to read config %s: %w", c.cfgFile, err)
		}
	}
	return nil
}

// engineConfig returns validated engine thresholds
func (c *cli) engineConfig() (config.EngineConfig, error) {
	cfg := config.Config{
		Engine: config.EngineConfig{
			MinConfidence:      c.v.GetFloat64("engine.min_confidence"),
			PriorityConfidence: c.v.GetFloat64("engine.priority_confidence"),
			RoomScoreFloor:     c.v.GetFloat64("engine.room_score_floor"),
			RoomMarginRatio:    c.v.GetFloat64("engine.room_margin_ratio"),
		},
		History: config.HistoryConfig{Backend: config.HistoryMemory, SimilarLimit: service.DefaultSimilarLimit},
	}
	if cfg.Engine.PriorityConfidence > cfg.Engine.MinConfidence {
		cfg.Engine.PriorityConfidence = cfg.Engine.MinConfidence
	}
	if err := cfg.Validate(); err != nil {
		return config.EngineConfig{}, err
	}
	return cfg.Engine, nil
}

func (c *cli) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if c.v.GetBool("debug") {
		level = "debug"
	}
	return logging.New(config.LoggingConfig{Level: level, Format: "text"}, w)
}

func (c *cli) format() (string, error) {
	format := strings.ToLower(c.v.GetString("format"))
	switch format {
	case "text", "json", "yaml":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q, want text, json or yaml", format)
	}
}
