package cmd

import (
	"encoding/csv"
	"fmt"
	log2 "log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datastax/bigtable-admin-apis/endpoint"
	"github.com/datastax/bigtable-admin-apis/log"
)

// Environment variables prefixed with "BIGTABLE_ADMIN_" can override settings e.g. "BIGTABLE_ADMIN_TARGET"
const envVarPrefix = "bigtable_admin"

var cfgFile string
var logger log.Logger

var rootCmd = &cobra.Command{
	Use:   "bigtable-admin",
	Short: "Gateway and tooling for the Bigtable table admin API",
}

// Execute runs the command selected by the arguments
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.StringP("target", "t", "bigtableadmin.googleapis.com:443", "address of the table admin server")
	flags.StringP("instance", "i", "", "instance name, in the form projects/<project>/instances/<instance>")
	flags.Bool("tls", true, "connect to the table admin server with TLS")
	flags.Duration("operation-poll-interval", endpoint.DefaultOperationPollInterval, "interval between two polls of a long running operation")

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newSchemaCmd())

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// bindFlags makes every flag of flags readable through viper.
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flag)
		}
	})
}

func initialize() {
	bindFlags(rootCmd.PersistentFlags())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createEndpointConfig() *endpoint.AdminEndpointConfig {
	instance := viper.GetString("instance")
	if instance == "" {
		logger.Fatal("an instance is required")
	}

	pollInterval := viper.GetDuration("operation-poll-interval")
	if pollInterval <= 0 {
		pollInterval = endpoint.DefaultOperationPollInterval
	}

	return endpoint.NewEndpointConfigWithLogger(logger, viper.GetString("target")).
		WithInstanceName(instance).
		WithTLS(viper.GetBool("tls")).
		WithOperationPollInterval(pollInterval)
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		for _, part := range split {
			if part != "" { // Don't add empty values
				result = append(result, part)
			}
		}
	}
	return result, nil
}
