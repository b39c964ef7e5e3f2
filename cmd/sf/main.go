package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"supplierfront/internal/app"
	"supplierfront/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sf",
	Short: "Supplier front end rules CLI",
	Long: `sf shows what a supplier sees in the marketplace front end, computed from a workspace snapshot.
Core concepts:
- Framework: a procurement scheme suppliers apply to join. It moves coming -> open -> pending -> standstill -> live -> expired.
- Lot: a category of service inside a framework.
- Declaration: the supplier's eligibility answers for a framework; unstarted, started or complete.
- Draft service: a service listing for a lot, in progress or marked as complete.
- Reuse: carrying a previous declaration forward into a new framework iteration.
- Workspace: a directory holding supplierfront.yml, the data snapshot and the content manifest.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SUPPLIERFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Int("supplier-id", 0, "supplier id (overrides config)")
	rootCmd.PersistentFlags().String("email", "", "signed in user email (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("supplier-id", rootCmd.PersistentFlags().Lookup("supplier-id"))
	_ = viper.BindPFlag("email", rootCmd.PersistentFlags().Lookup("email"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(frameworkCmd())
	rootCmd.AddCommand(supplyCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(reuseCmd())
	rootCmd.AddCommand(lotsCmd())
	rootCmd.AddCommand(declarationCmd())
	rootCmd.AddCommand(agreementCmd())
	rootCmd.AddCommand(contentCmd())
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Manage workspace config",
		Long:  "supplierfront.yml points at the data snapshot and content manifest, names the default supplier and can narrow which framework statuses are visible.",
	}
	cfg.AddCommand(configInitCmd())
	cfg.AddCommand(configShowCmd())
	cfg.AddCommand(configValidateCmd())
	return cfg
}

func configInitCmd() *cobra.Command {
	var supplierID int
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default supplierfront.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if _, err := config.Default(supplierID); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault(supplierID)), 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&supplierID, "supplier", 0, "default supplier id")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show loaded config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSONOrTable(cfg)
		},
	}
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate config, snapshot and content",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				_, err := s.FrameworksBySlug(ctx)
				return err
			})
			if viper.GetBool("json") {
				return printJSON(validationResult(err))
			}
			if err != nil {
				return err
			}
			fmt.Println("workspace OK")
			return nil
		},
	}
}

// --- helpers ---

func validationResult(err error) map[string]any {
	out := map[string]any{"ok": err == nil}
	if err != nil {
		out["error"] = err.Error()
	}
	return out
}

// session is the explicit request context: who is asking.
type session struct {
	Actor  app.Actor
	Config *config.Config
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func withService(ctx context.Context, fn func(context.Context, *app.Service, session) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	svc, cfg, err := app.OpenOptional(viper.GetString("workspace"), viper.GetInt("supplier-id"), logger)
	if err != nil {
		return err
	}
	sess := session{Config: cfg}
	sess.Actor.SupplierID = cfg.Supplier.ID
	sess.Actor.Email = cfg.Supplier.Email
	if id := viper.GetInt("supplier-id"); id != 0 {
		sess.Actor.SupplierID = id
	}
	if email := viper.GetString("email"); email != "" {
		sess.Actor.Email = email
	}
	return fn(ctx, svc, sess)
}

func (s session) requireSupplier() error {
	if s.Actor.SupplierID == 0 {
		return fmt.Errorf("supplier not specified; use --supplier-id or set supplier.id in supplierfront.yml")
	}
	return nil
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
