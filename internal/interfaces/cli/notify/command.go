package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/infrastructure/cache"
	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/infrastructure/database"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/logger"
)

var (
	env        string
	configPath string
	dryRun     bool
	output     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "notify [daily|weekly]",
		Short:     "Run a notification job once",
		Long:      `Build and send the daily expiry alert or the weekly inventory report for every tenant. Digests already sent for the current period are skipped.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(notification.KindDaily), string(notification.KindWeekly)},
		RunE:      run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render digests and print their subjects without sending")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Result format (table, json)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	kind, err := notification.ParseKind(args[0])
	if err != nil {
		return err
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.WithComponent("notify")

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var printer io.Writer
	if dryRun {
		printer = cmd.OutOrStdout()
	}
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, 5*time.Second)
	switch {
	case err == nil:
		defer redisClient.Close()
	case dryRun:
		// Dry runs only read the ledger, so they go ahead without it.
		log.Warnw("redis unavailable, dry run cannot mark digests already sent", "error", err)
		redisClient = nil
	default:
		return err
	}

	job, err := NewJob(cfg, database.Get(), redisClient, printer, log)
	if err != nil {
		return err
	}

	result, err := job.Run(ctx, kind)
	if err != nil {
		return fmt.Errorf("notification run failed: %w", err)
	}

	if err := printResult(cmd.OutOrStdout(), result, output); err != nil {
		return err
	}
	if n := len(result.Errors); n > 0 {
		return fmt.Errorf("%d tenant(s) failed", n)
	}
	return nil
}

func printResult(w io.Writer, result *notification.RunResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "KIND\tPERIOD\tTENANTS\tDISPATCHED\tSKIPPED\tFAILED\tDURATION\n")
	fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
		result.Kind, result.Period, result.Tenants, result.Dispatched, result.Skipped,
		len(result.Errors), result.Duration.Round(time.Millisecond))
	if len(result.Errors) > 0 {
		fmt.Fprintf(tw, "\nTENANT\tERROR\n")
		for _, e := range result.Errors {
			fmt.Fprintf(tw, "%s\t%s\n", e.TenantID, e.Message)
		}
	}
	return tw.Flush()
}
