package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"qabot/internal/service"
	"qabot/internal/tui"
)

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "qabot",
		Short:        "Answer questions from a question|response file and learn missing answers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/qabot/config.yaml if not provided)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the question|response file (overrides store.path)")
	root.PersistentFlags().StringVar(&opts.metric, "metric", "", "Match metric: cosine, attention, edit_distance or exact (overrides engine.metric)")

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start the interactive chat",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runChat(cmd, opts)
			},
		},
		newAskCmd(opts),
		newTeachCmd(opts),
		newListCmd(opts),
	)
	return root
}

func runChat(cmd *cobra.Command, opts *options) error {
	a, err := assemble(opts, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	st := a.svc.Stats()
	header := fmt.Sprintf("%d entrées chargées (max %d) · metric %s", st.Entries, st.Capacity, st.Metric)
	if _, err := tea.NewProgram(tui.New(a.svc, header)).Run(); err != nil {
		return err
	}
	return nil
}

func newAskCmd(opts *options) *cobra.Command {
	var teach bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := assemble(opts, true, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			var corrector *promptCorrector
			if teach {
				corrector = newPromptCorrector(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			question := strings.Join(args, " ")
			reply, err := resolve(cmd.Context(), a.svc, question, corrector)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch reply.Source {
			case service.SourceUnknown:
				fmt.Fprintln(out, "Je ne sais pas quoi répondre.")
			case service.SourceLearned:
				fmt.Fprintln(out, "Réponse apprise et ajoutée à la base de données !")
			default:
				fmt.Fprintf(out, "Réponse : %s\n", reply.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&teach, "teach", false, "Prompt for the answer on stdin when the question is unknown")
	return cmd
}

// resolve keeps a nil *promptCorrector from becoming a non-nil interface.
func resolve(ctx context.Context, svc *service.QAServiceImpl, question string, c *promptCorrector) (service.Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c == nil {
		return svc.Resolve(ctx, question, nil)
	}
	return svc.Resolve(ctx, question, c)
}

func newTeachCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "teach <question> <response>",
		Short: "Add a question and its response to the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := assemble(opts, true, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.svc.Learn(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Réponse apprise et ajoutée à la base de données !")
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := assemble(opts, true, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			for i, q := range a.svc.Questions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, q)
			}
			return nil
		},
	}
}

// promptCorrector asks for the missing answer on a line-oriented terminal.
type promptCorrector struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptCorrector(in io.Reader, out io.Writer) *promptCorrector {
	return &promptCorrector{in: bufio.NewReader(in), out: out}
}

func (p *promptCorrector) Correct(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, "Je ne sais pas quoi répondre... Que dois-je dire ?\nVous : ")
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
