package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/rest"
	"github.com/matzehuels/opencga/pkg/rest/operation"
)

// routeFlags holds the flags shared by every operation subcommand.
type routeFlags struct {
	data   string
	params []string
	output string
	raw    bool
	yes    bool
}

var optionUsage = map[string]string{
	operation.ParamJobID:          "unique job ID, autogenerated by the server when empty",
	operation.ParamJobDescription: "job description",
	operation.ParamJobDependsOn:   "comma separated IDs of jobs this job depends on",
	operation.ParamJobTags:        "comma separated job tags",
	operation.ParamStudy:          "study [[user@]project:]study",
	operation.ParamProject:        "project [user@]project",
	operation.ParamAnnotationID:   "ID of the saved annotation",
	operation.ParamName:           "unique name of the score within the study",
	operation.ParamResume:         "resume a previously failed run",
	operation.ParamForce:          "force the operation",
	operation.ParamSamples:        "comma separated sample IDs",
}

// operationCommand creates the operation command with one subcommand per route.
func (c *CLI) operationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operation",
		Aliases: []string{"op"},
		Short:   "Submit variant storage operations",
		Long: `Submit variant storage operations to the OpenCGA server.

Each subcommand maps to one endpoint under /{apiVersion}/operation. POST
operations take a JSON payload with --data. Options are passed as flags,
and --param adds any other query parameter. Parameter names are sent in
camelCase, so --param include_result=x becomes includeResult=x. A name
written in camelCase takes precedence over a snake_case variant.`,
		Example: `  opencga operation aggregate-variant --study user@project:study -d '{"overwrite":true}'
  opencga op index-variant-score --study s --name gwas1 -d @score.yaml
  opencga op delete-variant-score --study s --name gwas1 --yes`,
	}

	for _, r := range operation.Routes() {
		cmd.AddCommand(c.routeCommand(r))
	}
	return cmd
}

func (c *CLI) routeCommand(r operation.Route) *cobra.Command {
	var f routeFlags

	cmd := &cobra.Command{
		Use:   r.Name,
		Short: r.Summary,
		Long:  routeHelp(r),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd, r, &f)
		},
	}

	fs := cmd.Flags()
	if r.HasBody() {
		fs.StringVarP(&f.data, "data", "d", "", "request body: inline JSON, @file (.json, .yaml, .yml) or - for stdin")
	} else {
		fs.BoolVarP(&f.yes, "yes", "y", false, "do not ask for confirmation")
	}
	for _, name := range r.Options {
		registerOption(fs, name)
	}
	fs.StringArrayVar(&f.params, "param", nil, "extra query parameter as key=value, key sent in camelCase (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "", "write the response body to a file")
	fs.BoolVar(&f.raw, "raw", false, "print the response body as received")

	return cmd
}

func routeHelp(r operation.Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.\n\nEndpoint: %s %s\n", r.Summary, r.Verb, r.Path())
	if r.Body != "" {
		fmt.Fprintf(&b, "Body:     %s\n", r.Body)
	}
	fmt.Fprintf(&b, "Options:  %s\n", strings.Join(r.Options, ", "))
	return b.String()
}

func (c *CLI) runRoute(cmd *cobra.Command, r operation.Route, f *routeFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := collectOptions(cmd.Flags(), r.Options, f.params)
	if err != nil {
		return err
	}

	// A nil interface sends no body.
	var body any
	if r.HasBody() && f.data != "" {
		raw, err := readData(f.data, cmd.InOrStdin())
		if err != nil {
			return err
		}
		body = raw
	}

	client, err := c.newClient(ctx, cmd.Flags())
	if err != nil {
		return err
	}

	if r.Verb == http.MethodDelete && !f.yes && c.interactive() {
		ok, err := confirm(fmt.Sprintf("Run %s on %s?", r.Name, client.Host()))
		if err != nil {
			return err
		}
		if !ok {
			printDetail("Aborted")
			return nil
		}
	}

	prog := newProgress(logger)
	var spinner *Spinner
	if c.interactive() {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("%s %s...", r.Verb, r.Path()))
		spinner.Start()
	}
	resp, err := client.Invoke(ctx, r.Name, body, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError(r.Name + " failed")
		}
		if resp != nil && len(resp.Body) > 0 {
			logger.Debug("error response", "status", resp.StatusCode, "request_id", resp.RequestID, "body", string(resp.Body))
		}
		return err
	}
	msg := fmt.Sprintf("%s: %d %s", r.Name, resp.StatusCode, http.StatusText(resp.StatusCode))
	if spinner != nil {
		spinner.StopWithSuccess(msg)
	} else {
		prog.done(msg)
	}

	out := formatBody(resp.Body, f.raw)
	if f.output != "" {
		if err := os.WriteFile(f.output, out, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		printFile(f.output)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// =============================================================================
// Options
// =============================================================================

func optionFlag(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func isListOption(name string) bool {
	switch name {
	case operation.ParamJobDependsOn, operation.ParamJobTags, operation.ParamSamples:
		return true
	}
	return false
}

func isBoolOption(name string) bool {
	return name == operation.ParamResume || name == operation.ParamForce
}

func registerOption(fs *pflag.FlagSet, name string) {
	flag, usage := optionFlag(name), optionUsage[name]
	switch {
	case isListOption(name):
		fs.StringSlice(flag, nil, usage)
	case isBoolOption(name):
		fs.Bool(flag, false, usage)
	default:
		fs.String(flag, "", usage)
	}
}

// collectOptions builds request options from the flags the user set and
// from --param key=value pairs. Unset flags are left out.
func collectOptions(fs *pflag.FlagSet, names, params []string) (rest.Options, error) {
	opts := rest.Options{}
	for _, name := range names {
		flag := optionFlag(name)
		if !fs.Changed(flag) {
			continue
		}
		var (
			v   any
			err error
		)
		switch {
		case isListOption(name):
			v, err = fs.GetStringSlice(flag)
		case isBoolOption(name):
			v, err = fs.GetBool(flag)
		default:
			v, err = fs.GetString(flag)
		}
		if err != nil {
			return nil, fmt.Errorf("read --%s: %w", flag, err)
		}
		opts[name] = v
	}

	for _, p := range params {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, apierrors.New(apierrors.ErrCodeInvalidInput, "--param %q: expected key=value", p)
		}
		opts[k] = v
	}
	return opts, nil
}

// =============================================================================
// Request Body
// =============================================================================

// readData resolves the --data argument into a JSON document. It accepts
// inline JSON, @path to a JSON or YAML file, or "-" to read stdin.
func readData(arg string, stdin io.Reader) (json.RawMessage, error) {
	var (
		data   []byte
		source = "--data"
		isYAML bool
	)
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data, source = b, "stdin"
		isYAML = !json.Valid(bytes.TrimSpace(b))
	case strings.HasPrefix(arg, "@"):
		path := arg[1:]
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apierrors.Wrap(apierrors.ErrCodeFileNotFound, err, "body file %s", path)
			}
			return nil, fmt.Errorf("read body file: %w", err)
		}
		data, source = b, path
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			isYAML = true
		}
	default:
		data = []byte(arg)
	}

	if isYAML {
		return yamlToJSON(data, source)
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, apierrors.New(apierrors.ErrCodeInvalidInput, "%s is not valid JSON", source)
	}
	return json.RawMessage(data), nil
}

func yamlToJSON(data []byte, source string) (json.RawMessage, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apierrors.Wrap(apierrors.ErrCodeInvalidInput, err, "%s is not valid JSON or YAML", source)
	}
	if doc == nil {
		return nil, apierrors.New(apierrors.ErrCodeInvalidInput, "%s is empty", source)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.ErrCodeInvalidInput, err, "%s cannot be expressed as JSON", source)
	}
	return json.RawMessage(out), nil
}

// =============================================================================
// Output
// =============================================================================

// formatBody indents JSON bodies unless raw is set. Bodies that are not
// JSON are returned unchanged.
func formatBody(body []byte, raw bool) []byte {
	if len(body) == 0 {
		return nil
	}
	if !raw {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			return buf.Bytes()
		}
	}
	if body[len(body)-1] == '\n' {
		return body
	}
	return append(body, '\n')
}

// confirm shows a yes/no prompt on stderr.
func confirm(prompt string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(prompt), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Confirmed, nil
}
