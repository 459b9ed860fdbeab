package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	configapp "helpdesk-assistant/internal/features/config/application"
	"helpdesk-assistant/internal/features/helpdesk/domain"
)

type generateOptions struct {
	overrides configapp.Overrides
	topic     string
	mode      string
	output    string
	raw       bool
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	g := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [ISSUE]",
		Short: "Generate a checklist or customer reply in the terminal",
		Long: `Builds the same prompt as the web form, asks the model once and prints the answer.

Examples:
  # Checklist for a networking issue
  helpdesk generate "uplink flapping on rack 12" --topic Networking

  # Customer reply, saved as a Markdown report
  helpdesk generate "node does not POST after RAM swap" --topic "Server boot" \
    --mode "Draft customer reply" --output reports/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var issue string
			if len(args) == 1 {
				issue = args[0]
			}
			return runGenerate(cmd, opts, g, issue)
		},
	}

	cmd.Flags().StringVarP(&g.topic, "topic", "t", domain.Topics[0], "Topic: "+strings.Join(domain.Topics, ", "))
	cmd.Flags().StringVarP(&g.mode, "mode", "m", string(domain.ModeChecklist), "Mode: "+strings.Join(domain.ModeNames(), ", "))
	cmd.Flags().StringVarP(&g.output, "output", "o", "", `Write the Markdown report to a file, a directory, or "-" for stdout`)
	cmd.Flags().BoolVar(&g.raw, "raw", false, "Print the answer without Markdown rendering")
	cmd.Flags().StringVar(&g.overrides.KnowledgeBasePath, "kb", "", "Path to the knowledge base YAML")
	cmd.Flags().StringVar(&g.overrides.Provider, "provider", "", "LLM provider (openai, anthropic, gemini)")
	cmd.Flags().StringVar(&g.overrides.Model, "model", "", "Model name for the provider")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *rootOptions, g *generateOptions, issue string) error {
	mode, ok := domain.ParseMode(g.mode)
	if !ok {
		return fmt.Errorf("unknown mode %q (supported: %s)", g.mode, strings.Join(domain.ModeNames(), ", "))
	}

	a, err := buildApp(opts, g.overrides)
	if err != nil {
		return err
	}
	if !slices.Contains(a.cfg.Topics, g.topic) {
		return fmt.Errorf("unknown topic %q (supported: %s)", g.topic, strings.Join(a.cfg.Topics, ", "))
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	printHeader(errOut, a.cfg.Title, mode, g.topic)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(errOut))
	s.Suffix = fmt.Sprintf(" Asking %s...", a.client.Provider())
	s.Start()
	result := a.service.Generate(cmd.Context(), domain.SessionInput{Mode: mode, Topic: g.topic, IssueText: issue})
	s.Stop()
	printSuccess(errOut, "Done")

	if g.output == "-" {
		_, err := io.WriteString(out, result.Report)
		return err
	}

	fmt.Fprintln(out, renderMarkdown(result.Output, g.raw))

	if g.output != "" {
		path, err := writeReport(g.output, result.Filename, result.Report)
		if err != nil {
			return err
		}
		printSuccess(errOut, "Report saved to "+path)
	}
	return nil
}

func renderMarkdown(text string, raw bool) string {
	if raw {
		return text
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return rendered
}

// writeReport writes into dest, or into dest/filename when dest is a directory.
func writeReport(dest, filename, report string) (string, error) {
	path := dest
	if strings.HasSuffix(dest, string(os.PathSeparator)) {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory %s: %w", dest, err)
		}
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		path = filepath.Join(dest, filename)
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

func printHeader(w io.Writer, title string, mode domain.Mode, topic string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, title)
	fmt.Fprintf(w, "Mode: %s\n", mode)
	fmt.Fprintf(w, "Topic: %s\n", topic)
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "! %s\n", msg)
}
