package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
	"github.com/uniformal/unicheck/pkg/check"
	"github.com/uniformal/unicheck/pkg/config"
	"github.com/uniformal/unicheck/pkg/log"
	"github.com/uniformal/unicheck/pkg/report"
)

const cmdExamples = `  # Check the project in the current directory:
  unicheck

  # Check a specific project path:
  unicheck ./my-shop

  # Use an explicit rule set:
  unicheck ./my-shop --rules ./unicheck.rules.yaml

  # Print a pass/fail line per check:
  unicheck --verbose

  # Machine-readable report:
  unicheck --output json

  # Write the default rule set into the project:
  unicheck --write-rules`

// ErrChecksFailed is returned when the run finishes below full uniformity.
// It maps to exit status 1.
var ErrChecksFailed = errors.New("checks failed")

type RunArgs struct {
	*RootArgs

	ProjectPath string
	RulesPath   string
	Output      string
	Verbose     bool
	WriteRules  bool
	ShowRules   bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.RulesPath, "rules", "", "Path to the rule-set file")
	cmd.Flags().StringVarP(&ra.Output, "output", "o", "text", "Report format, one of: [text, json]")
	cmd.Flags().BoolVarP(&ra.Verbose, "verbose", "v", false, "Print a pass/fail line per check")
	cmd.Flags().BoolVar(&ra.WriteRules, "write-rules", false, "Write the default rule set and exit")
	cmd.Flags().BoolVar(&ra.ShowRules, "show-rules", false, "Print the active rule set and exit")

	err := cmd.MarkFlagFilename("rules", "yaml", "yml", "json")
	if err != nil {
		panic(fmt.Errorf("mark rules flag: %w", err))
	}

	err = cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions([]string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(fmt.Errorf("register output completion: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [path]",
		Short:   "Default command, checks the project at path (default: current directory)",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			ra.ProjectPath = path

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// renderer is satisfied by both report renderers.
type renderer interface {
	Render(result *check.Result) (report.Summary, error)
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	projectPath, err := filepath.Abs(ra.ProjectPath)
	if err != nil {
		return fmt.Errorf("resolve project path: %w", err)
	}

	rulesPath := ra.RulesPath
	if rulesPath == "" {
		rulesPath = config.GetRuleSetPath(projectPath)
	}

	if ra.WriteRules {
		if rulesPath == "" {
			rulesPath = filepath.Join(projectPath, rulesets.FileNames[0])
		}

		return rulesets.WriteDefault(rulesPath, false) //nolint:wrapcheck // Already descriptive.
	}

	if rulesPath == "" {
		return fmt.Errorf("no rule-set file found for %q (try --rules, or --write-rules to create one)", projectPath)
	}

	ruleSet, err := config.LoadRuleSet(rulesPath)
	if err != nil {
		return err //nolint:wrapcheck // Configuration errors carry the path already.
	}

	slog.Debug("loaded rule set",
		slog.String("path", rulesPath),
		slog.Int("sections", len(ruleSet.Sections())),
	)

	if ra.ShowRules {
		yamlBytes, err := ruleSet.MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal rule set: %w", err)
		}

		mustN(fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes)))

		return nil
	}

	// Buffer diagnostics while the report renders, then flush to stderr.
	logBuf := log.NewBuffer(100)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))
	defer flushLogs(cmd, logBuf)

	var opts []check.SessionOpt
	if ra.Verbose && ra.Output == "text" {
		opts = append(opts, check.WithObserver(report.NewConsoleObserver(cmd.OutOrStdout())))
	}

	result := check.NewSession(projectPath, opts...).Run(ruleSet)

	var r renderer

	switch ra.Output {
	case "text":
		r = report.NewRenderer(cmd.OutOrStdout())
	case "json":
		r = report.NewJSONRenderer(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown output format %q, expected one of: [text, json]", ra.Output)
	}

	summary, err := r.Render(result)
	if err != nil {
		return err //nolint:wrapcheck // Render errors are already wrapped.
	}

	if !summary.Passed() {
		return fmt.Errorf("%w: uniformity %d%%", ErrChecksFailed, summary.Percentage)
	}

	return nil
}

func flushLogs(cmd *cobra.Command, logBuf *log.Buffer) {
	_, err := logBuf.WriteTo(cmd.ErrOrStderr())
	if err != nil {
		panic(err)
	}
}
