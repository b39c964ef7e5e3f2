package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"supplierfront/internal/app"
	"supplierfront/internal/domain"
	"supplierfront/internal/engine"
)

func frameworkCmd() *cobra.Command {
	fw := &cobra.Command{
		Use:   "framework",
		Short: "Look up frameworks",
	}
	fw.AddCommand(frameworkShowCmd())
	fw.AddCommand(frameworkLotCmd())
	fw.AddCommand(frameworkListCmd())
	fw.AddCommand(frameworkIterationsCmd())
	return fw
}

func frameworkShowCmd() *cobra.Command {
	var statuses []string
	var anyStatus bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a framework visible to suppliers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowed, err := statusList(statuses)
			if err != nil {
				return err
			}
			if anyStatus {
				allowed = engine.AnyStatus
			}
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				fw, err := s.GetFramework(ctx, args[0], allowed)
				if err != nil {
					return err
				}
				return printJSONOrTable(fw)
			})
		},
	}
	cmd.Flags().StringArrayVar(&statuses, "status", nil, "allowed status (repeatable)")
	cmd.Flags().BoolVar(&anyStatus, "any-status", false, "skip the status check")
	return cmd
}

func frameworkLotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lot <framework> <lot>",
		Short: "Show a lot of a framework",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				_, lot, err := s.GetFrameworkAndLot(ctx, args[0], args[1], nil)
				if err != nil {
					return err
				}
				return printJSONOrTable(lot)
			})
		},
	}
}

func frameworkListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List frameworks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				var frameworks []domain.Framework
				var err error
				if status != "" {
					if !domain.FrameworkStatus(status).Valid() {
						return fmt.Errorf("unknown framework status %q", status)
					}
					frameworks, err = s.FrameworksByStatus(ctx, domain.FrameworkStatus(status))
				} else {
					frameworks, err = s.Source.FindFrameworks(ctx)
				}
				if err != nil {
					return err
				}
				return printFrameworks(frameworks)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	return cmd
}

func frameworkIterationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "iterations",
		Short: "Show one iteration per framework family (open > coming > closed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				frameworks, err := s.Source.FindFrameworks(ctx)
				if err != nil {
					return err
				}
				return printFrameworks(engine.SelectRepresentativeIterations(frameworks))
			})
		},
	}
}

func supplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "Show frameworks open, opening and closed for applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				split, err := s.BecomeASupplier(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(split)
				}
				for _, group := range []struct {
					title string
					items []domain.Framework
				}{{"Open for applications", split.Open}, {"Opening soon", split.Opening}, {"Closed", split.Closed}} {
					fmt.Println(group.title)
					if err := printFrameworks(group.items); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the supplier dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				d, err := s.Dashboard(ctx, sess.Actor.SupplierID)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(d)
				}
				fmt.Printf("%s (supplier %d)\n", d.Supplier.Name, d.Supplier.ID)
				if d.Supplier.Email != "" {
					fmt.Printf("Contact: %s\n", d.Supplier.Email)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Section", "Slug", "Name", "Closes", "Interest", "Applied", "Declaration due"})
				for _, section := range []struct {
					name  string
					items []engine.DashboardFramework
				}{{"coming", d.Coming}, {"open", d.Open}, {"pending", d.Pending}, {"standstill", d.Standstill}, {"live", d.Live}} {
					for _, e := range section.items {
						tw.AppendRow(table.Row{section.name, e.Slug, e.Name, closes(e.Framework), e.RegisteredInterest, e.MadeApplication, e.NeedsToCompleteDeclaration})
					}
				}
				tw.Render()
				return nil
			})
		},
	}
}

func reuseCmd() *cobra.Command {
	var exclude []string
	cmd := &cobra.Command{
		Use:   "reuse",
		Short: "Show the framework whose declaration can be reused",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				if !cmd.Flags().Changed("exclude") {
					exclude = sess.Config.Frameworks.ReuseExclude
				}
				fw, ok, err := s.FrameworkForReuse(ctx, sess.Actor.SupplierID, exclude)
				if err != nil {
					return err
				}
				if !ok {
					if viper.GetBool("json") {
						return printJSON(nil)
					}
					fmt.Println("No declaration available for reuse")
					return nil
				}
				return printJSONOrTable(fw)
			})
		},
	}
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "framework slug to skip (repeatable)")
	return cmd
}

func lotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lots <framework> [lot]",
		Short: "Show the supplier's draft status per lot",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				fw, err := s.GetFramework(ctx, args[0], nil)
				if err != nil {
					return err
				}
				lots := fw.Lots
				if len(args) == 2 {
					lot, err := engine.GetFrameworkLotOrFail(fw, args[1])
					if err != nil {
						return err
					}
					lots = []domain.Lot{lot}
				}
				result := map[string][]domain.StatusDescriptor{}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Lot", "Status", "Hint", "Type"})
				for _, lot := range lots {
					statuses, err := s.LotStatuses(ctx, sess.Actor.SupplierID, fw.Slug, lot.Slug)
					if err != nil {
						return err
					}
					result[lot.Slug] = statuses
					if len(statuses) == 0 {
						tw.AppendRow(table.Row{lot.Name, "", "", ""})
					}
					for _, st := range statuses {
						tw.AppendRow(table.Row{lot.Name, st.Title, st.Hint, st.Type})
					}
				}
				if viper.GetBool("json") {
					return printJSON(result)
				}
				tw.Render()
				return nil
			})
		},
	}
}

func declarationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declaration <framework>",
		Short: "Show the supplier's declaration status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				if _, err := s.MustGetFramework(ctx, args[0]); err != nil {
					return err
				}
				status, err := s.DeclarationStatus(ctx, sess.Actor.SupplierID, args[0])
				if err != nil {
					return err
				}
				out := map[string]any{"framework": args[0], "status": status}
				if status != domain.DeclarationUnstarted {
					name, err := s.RegisteredName(ctx, sess.Actor.SupplierID, args[0])
					if err != nil {
						return err
					}
					out["registered_name"] = name
				}
				return printJSONOrTable(out)
			})
		},
	}
}

func agreementCmd() *cobra.Command {
	ag := &cobra.Command{
		Use:   "agreement",
		Short: "Framework agreement checks",
	}
	ag.AddCommand(&cobra.Command{
		Use:   "recipients <framework>",
		Short: "List who is emailed when the agreement is returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				if sess.Actor.Email == "" {
					return fmt.Errorf("--email required")
				}
				recipients, err := s.AgreementRecipients(ctx, sess.Actor, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(recipients)
			})
		},
	})
	ag.AddCommand(&cobra.Command{
		Use:   "check <framework> <agreement-id>",
		Short: "Check an agreement belongs to the supplier's framework",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid agreement id %q", args[1])
			}
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, sess session) error {
				if err := sess.requireSupplier(); err != nil {
					return err
				}
				agreement, err := s.AgreementForSupplierFramework(ctx, sess.Actor.SupplierID, args[0], id)
				if err != nil {
					return err
				}
				return printJSONOrTable(agreement)
			})
		},
	})
	ag.AddCommand(&cobra.Command{
		Use:   "document <framework> <prefix>",
		Short: "Show when the first matching framework document was last modified",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				ts, err := s.CommunicationLastModified(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				if ts == nil {
					return fmt.Errorf("no document %s/%s", args[0], args[1])
				}
				return printJSONOrTable(ts)
			})
		},
	})
	return ag
}

func contentCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "content",
		Short: "Content manifest helpers",
	}
	var markup bool
	refs := &cobra.Command{
		Use:   "refs <text>",
		Short: "Replace [[questionId]] references with question numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				in := engine.Plain(args[0])
				if markup {
					in = engine.Markup(args[0])
				}
				out, err := s.QuestionReferences(in)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(out)
				}
				fmt.Println(out.Value)
				return nil
			})
		},
	}
	refs.Flags().BoolVar(&markup, "markup", false, "treat text as HTML markup")
	c.AddCommand(refs)
	c.AddCommand(&cobra.Command{
		Use:   "first-question <section>",
		Short: "Show how many questions precede a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *app.Service, _ session) error {
				n, err := s.FirstQuestionIndex(args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(n)
			})
		},
	})
	return c
}

func printFrameworks(frameworks []domain.Framework) error {
	if viper.GetBool("json") {
		return printJSON(frameworks)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Slug", "Family", "Status", "Closes", "Reuse"})
	for _, fw := range frameworks {
		tw.AppendRow(table.Row{fw.ID, fw.Slug, fw.Family, fw.Status, closes(fw), fw.AllowDeclarationReuse})
	}
	tw.Render()
	return nil
}

func closes(fw domain.Framework) string {
	if fw.ApplicationsCloseAtUTC == nil {
		return ""
	}
	return humanize.Time(fw.ApplicationsCloseAtUTC.Time)
}

// statusList parses --status values, rejecting statuses frameworks never have.
func statusList(in []string) ([]domain.FrameworkStatus, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]domain.FrameworkStatus, 0, len(in))
	for _, s := range in {
		status := domain.FrameworkStatus(s)
		if !status.Valid() {
			return nil, fmt.Errorf("unknown framework status %q", s)
		}
		out = append(out, status)
	}
	return out, nil
}
