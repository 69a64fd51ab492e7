package metafit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/service"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the saved copy of plans and catalogs",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListCollectionCache(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "KIND\tITEMS\tRANGE\tFETCHED")
			for _, it := range items {
				rng := "-"
				if it.RangeFrom != "" || it.RangeTo != "" {
					rng = it.RangeFrom + ".." + it.RangeTo
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Kind, it.Count, rng, it.FetchedAt.Local().Format(time.DateTime))
			}
			return nil
		})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all cached collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			n, err := service.PurgeCollectionCache(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached collection(s)\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cachePurgeCmd)
}
