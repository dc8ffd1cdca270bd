package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/skilltree/internal/app"
	"github.com/specialistvlad/skilltree/internal/leveling"
	"github.com/specialistvlad/skilltree/internal/publish"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// options are the raw flag values shared by all commands.
type options struct {
	source       string
	skillSet     int64
	owner        int64
	maxLevel     int
	strictCycles bool
	logFormat    string
	logLevel     string
	apiURL       string
	apiKey       string

	output  string
	publish bool
	json    bool
	port    int
}

// Parse processes command-line arguments. It returns a validated Config, a
// boolean indicating if the program should exit cleanly (help or bare
// invocation), or an ExitError.
func Parse(args []string, output io.Writer, getenv Getenv) (*app.Config, bool, error) {
	opts := options{}
	var parsed *app.Config

	root, err := newRootCommand(&opts, getenv, func(cmd *cobra.Command, command app.Command, paths []string) error {
		cfg, err := buildConfig(cmd, &opts, command, paths, getenv)
		if err != nil {
			return err
		}
		parsed = cfg
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}
	if parsed == nil {
		return nil, true, nil
	}
	return parsed, false, nil
}

type commandFunc func(cmd *cobra.Command, command app.Command, paths []string) error

func newRootCommand(opts *options, getenv Getenv, run commandFunc) (*cobra.Command, error) {
	defaultOwner, err := envInt(getenv, "SKILLTREE_OWNER_UID")
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "skilltree",
		Short: "skilltree - level skill sets by their prerequisites",
		Long: `skilltree groups the skills of a skill set into levels: skills without
prerequisites are on level 0 and every other skill sits above all of the
skills it requires. The skill set comes from HCL catalog files or from a
SkillDisplay instance.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.source, "source", app.SourceHCL, "Catalog source: 'hcl' or 'api'.")
	pf.Int64Var(&opts.skillSet, "skillset", 0, "ID of the skill set to use. Optional for HCL catalogs with a single set.")
	pf.Int64Var(&opts.owner, "owner", defaultOwner, "Keep only skills owned by this user id. 0 disables the filter. [$SKILLTREE_OWNER_UID]")
	pf.IntVar(&opts.maxLevel, "max-level", leveling.DefaultMaxLevel, "Highest level to assign.")
	pf.BoolVar(&opts.strictCycles, "strict-cycles", false, "Fail on circular requirements and on reaching the level ceiling.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.apiURL, "api-url", getenv("SKILLDISPLAY_API_URL"), "SkillDisplay base URL. [$SKILLDISPLAY_API_URL]")
	pf.StringVar(&opts.apiKey, "api-key", "", "SkillDisplay API key. [$SKILLDISPLAY_API_KEY]")

	exportCmd := &cobra.Command{
		Use:   "export [CATALOG_PATH...]",
		Short: "Write the leveled skill set document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app.CommandExport, args)
		},
	}
	exportCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Markdown file to write.")
	exportCmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload the document to object storage. [$SKILLTREE_S3_*]")

	levelsCmd := &cobra.Command{
		Use:   "levels [CATALOG_PATH...]",
		Short: "Print the levels of a skill set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app.CommandLevels, args)
		},
	}
	levelsCmd.Flags().BoolVar(&opts.json, "json", false, "Print the levels as JSON.")

	serveCmd := &cobra.Command{
		Use:   "serve [CATALOG_PATH...]",
		Short: "Serve /health, /levels and /document over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app.CommandServe, args)
		},
	}
	serveCmd.Flags().IntVar(&opts.port, "port", 8080, "Port to listen on.")

	root.AddCommand(exportCmd, levelsCmd, serveCmd)
	return root, nil
}

func buildConfig(cmd *cobra.Command, opts *options, command app.Command, paths []string, getenv Getenv) (*app.Config, error) {
	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = getenv("SKILLDISPLAY_API_KEY")
	}

	cfg, err := app.NewConfig(app.Config{
		Command:          command,
		Source:           strings.ToLower(opts.source),
		CatalogPaths:     paths,
		APIURL:           opts.apiURL,
		APIKey:           apiKey,
		SkillSetID:       opts.skillSet,
		SkillSetSelected: cmd.Flags().Changed("skillset"),
		OwnerUID:         opts.owner,
		MaxLevel:         opts.maxLevel,
		StrictCycles:     opts.strictCycles,
		OutputPath:       opts.output,
		Publish:          opts.publish,
		Storage:          publish.ConfigFromEnv(getenv),
		JSON:             opts.json,
		Port:             opts.port,
		LogFormat:        strings.ToLower(opts.logFormat),
		LogLevel:         strings.ToLower(opts.logLevel),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func envInt(getenv Getenv, key string) (int64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s %q: must be an integer", key, raw)}
	}
	return v, nil
}
