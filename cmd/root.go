package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/projecteru2/uuidkey/config"
	"github.com/projecteru2/uuidkey/document"
	"github.com/projecteru2/uuidkey/symbol"
)

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "uuidkey",
		Short:        "Generate the uuidKey.json symbol table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		RunE: runGenerate,
	}

	def := config.DefaultConfig()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().Int("count", def.Count, "number of symbols to generate")
	cmd.PersistentFlags().String("output", def.Output, "output document path")
	cmd.PersistentFlags().String("seed", def.Seed, "seed for a reproducible run (empty: random)")
	cmd.PersistentFlags().String("strategy", def.Strategy, "second-character draw: reject or exclude")
	cmd.PersistentFlags().Bool("lock", def.Lock, "hold an flock on the output directory while writing")
	cmd.PersistentFlags().String("log-level", def.Log.Level, "log level")

	_ = viper.BindPFlag("count", cmd.PersistentFlags().Lookup("count"))
	_ = viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("seed", cmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("strategy", cmd.PersistentFlags().Lookup("strategy"))
	_ = viper.BindPFlag("lock", cmd.PersistentFlags().Lookup("lock"))
	_ = viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("UUIDKEY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cmd.AddCommand(
		newVerifyCmd(),
		newVersionCmd(),
	)

	return cmd
}

func initConfig() error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if conf.Log == nil {
		conf.Log = &coretypes.ServerLogConfig{}
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return log.SetupLog(context.Background(), conf.Log, "")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	strategy, err := symbol.ParseStrategy(conf.Strategy)
	if err != nil {
		return err
	}

	syms, err := symbol.NewGenerator(symbol.NewSource(conf.Seed), strategy).Generate(ctx, conf.Count)
	if err != nil {
		return err
	}
	_, err = document.Persist(ctx, conf.Output, document.New(syms), document.Options{Lock: conf.Lock})
	return err
}

// Execute runs the CLI. SIGINT/SIGTERM cancel the command context, which
// aborts a run still waiting for the output lock.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
