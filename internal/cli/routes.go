package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/opencga/pkg/rest/operation"
)

// routesCommand creates the routes command for listing operation endpoints.
func (c *CLI) routesCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the operation endpoints",
		Long:  `List every variant storage operation with its HTTP verb, path and summary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderRoutes(cmd.OutOrStdout(), operation.Routes(), long)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include the documented options")

	cmd.AddCommand(c.routesPickCommand())
	return cmd
}

func (c *CLI) routesPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick an operation interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.interactive() {
				return fmt.Errorf("routes pick needs an interactive terminal")
			}
			p := tea.NewProgram(NewRouteListModel(operation.Routes()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			m, ok := final.(RouteListModel)
			if !ok || m.Selected == nil {
				printDetail("No selection made")
				return nil
			}
			printNewline()
			printNextStep("Run", appName+" operation "+m.Selected.Name+" --help")
			return nil
		},
	}
}

func renderRoutes(w io.Writer, routes []operation.Route, long bool) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	headers := []string{"Operation", "Verb", "Path", "Summary"}
	if long {
		headers = append(headers, "Options")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	for _, r := range routes {
		row := []string{r.Name, renderVerb(r.Verb), r.Path(), r.Summary}
		if long {
			row = append(row, joinOptions(r.Options))
		}
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func joinOptions(opts []string) string {
	s := ""
	for i, o := range opts {
		if i > 0 {
			s += "\n"
		}
		s += "--" + optionFlag(o)
	}
	return s
}
