package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datastax/bigtable-admin-apis/db"
	"github.com/datastax/bigtable-admin-apis/migrate"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate --hosts [HOSTS] --keyspace [KEYSPACE] [--dry-run] [OPTIONS]",
		Short: "Create Bigtable tables from the tables of a Cassandra keyspace",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(getStringSlice("hosts")) == 0 {
				return errors.New("hosts are required")
			}
			if viper.GetString("keyspace") == "" {
				return errors.New("a keyspace is required")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			database, err := db.NewDb(db.Config{
				Hosts:    getStringSlice("hosts"),
				Username: viper.GetString("username"),
				Password: viper.GetString("password"),
				LocalDC:  viper.GetString("local-dc"),
				Timeout:  viper.GetDuration("db-timeout"),
			})
			if err != nil {
				logger.Fatal("unable to connect to the database", "error", err)
			}
			defer database.Close()

			cfg := createEndpointConfig()
			endpoint, err := cfg.NewEndpoint()
			if err != nil {
				logger.Fatal("unable create new endpoint", "error", err)
			}
			defer endpoint.Close()

			ctx := context.Background()
			keyspace := viper.GetString("keyspace")
			plan, err := migrate.NewPlanner(database, endpoint.TableAdmin(), cfg).Plan(ctx, keyspace)
			if err != nil {
				logger.Fatal("unable to plan the migration", "keyspace", keyspace, "error", err)
			}

			if viper.GetBool("dry-run") {
				fmt.Print(plan.Diff())
				return
			}
			if plan.Empty() {
				logger.Info("tables are up to date", "keyspace", keyspace)
				return
			}

			result, err := migrate.Apply(ctx, endpoint.TableAdmin(), plan, logger)
			if err != nil {
				logger.Fatal("migration failed",
					"tablesCreated", result.TablesCreated,
					"familiesAdded", result.FamiliesAdded,
					"error", err)
			}
			logger.Info("migration done",
				"tablesCreated", result.TablesCreated,
				"familiesAdded", result.FamiliesAdded,
				"tablesUpToDate", result.TablesUpToDate)
		},
	}

	flags := cmd.Flags()
	flags.StringSlice("hosts", nil, "hosts for connecting to the database")
	flags.StringP("username", "u", "", "connect with database username")
	flags.StringP("password", "p", "", "database user's password")
	flags.String("local-dc", "", "data center used for database requests")
	flags.Duration("db-timeout", 10*time.Second, "timeout of database requests")
	flags.StringP("keyspace", "k", "", "keyspace whose tables are migrated")
	flags.Bool("dry-run", false, "print the changes instead of applying them")

	bindFlags(flags)
	return cmd
}
