package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/hamed0406/rpcmon/internal/availability"
	"github.com/hamed0406/rpcmon/internal/domain"
	"github.com/hamed0406/rpcmon/internal/jsonrpc"
)

// Console writes the human-readable run transcript.
type Console struct {
	w         io.Writer
	threshold float64

	red, green, blue, yellow *color.Color
}

// NewConsole returns a console reporter. With useColor false no escape
// sequences are written; with it true terminal detection still applies.
func NewConsole(w io.Writer, threshold float64, useColor bool) *Console {
	c := &Console{
		w:         w,
		threshold: threshold,
		red:       color.New(color.FgRed, color.Bold),
		green:     color.New(color.FgGreen, color.Bold),
		blue:      color.New(color.FgBlue, color.Bold),
		yellow:    color.New(color.FgYellow, color.Bold),
	}
	if !useColor {
		for _, p := range []*color.Color{c.red, c.green, c.blue, c.yellow} {
			p.DisableColor()
		}
	}
	return c
}

// Banner prints the greeting shown before any endpoint is contacted.
func (c *Console) Banner(source string) {
	fmt.Fprintf(c.w, "\nWelcome to the %s-%s monitor.\n\n", c.green.Sprint("JSON-RPC"), c.blue.Sprint("RPCMON"))
	fmt.Fprintf(c.w, "Reading service URLs from %s\n\n", c.green.Sprint(source))
	fmt.Fprintln(c.w, "Contacting services:")
}

func (c *Console) Endpoint(r domain.EndpointReport) {
	fmt.Fprintf(c.w, "Service: %s", c.blue.Sprintf("%-40s", r.Endpoint))
	if !r.Status.Answered() {
		fmt.Fprintf(c.w, " [%s]\n", c.red.Sprint("FAIL"))
		fmt.Fprintf(c.w, "\t%s: %s\n", c.red.Sprint("ERROR"), r.Reason)
		return
	}
	fmt.Fprintf(c.w, " [%s]\n", c.green.Sprint(" OK "))

	switch r.Status {
	case domain.StatusResult:
		fmt.Fprintf(c.w, "\t%s {Name: %s, Disponibility: %s}\n",
			c.green.Sprint("Returned"), c.yellow.Sprint(r.ServiceName), c.yellow.Sprintf("%1.2f", deref(r.Availability)))
	case domain.StatusServiceError:
		fmt.Fprintf(c.w, "\t%s: got an error response from %s\n", c.red.Sprint("ERROR"), c.blue.Sprint(r.Endpoint))
		if r.ErrorCode != nil {
			code := c.blue.Sprint(*r.ErrorCode)
			if label := jsonrpc.CodeText(*r.ErrorCode); label != "" {
				code += " (" + label + ")"
			}
			fmt.Fprintf(c.w, "\t  Code: %s\n", code)
		}
		fmt.Fprintf(c.w, "\t  Message: %s\n", c.yellow.Sprint(r.ErrorMessage))
	case domain.StatusParseFailure:
		fmt.Fprintf(c.w, "\t%s: failed to parse response from %s\n", c.red.Sprint("ERROR"), c.blue.Sprint(r.Endpoint))
	default:
		fmt.Fprintf(c.w, "\t%s: invalid response message from %s\n", c.red.Sprint("ERROR"), c.blue.Sprint(r.Endpoint))
		if r.Reason != "" {
			fmt.Fprintf(c.w, "\t  Reason: %s\n", r.Reason)
		}
	}
}

func (c *Console) Summary(_ context.Context, run domain.RunReport) error {
	count := c.green
	if !run.AllResponded() {
		count = c.red
	}
	fmt.Fprintf(c.w, "\n%s out of %s services responded.\n",
		count.Sprint(run.Responded), c.green.Sprint(run.Total))

	if run.Computable() {
		v := *run.Composite
		fmt.Fprintf(c.w, "The disponibility of the service is: %s\n\n", c.compositeColor(v).Sprintf("%f", v))
	} else {
		fmt.Fprintf(c.w, "%s\n\n", c.red.Sprint("Cannot calculate the disponibility of the service."))
	}

	if len(run.Endpoints) == 0 {
		return nil
	}
	table := tablewriter.NewTable(c.w,
		tablewriter.WithHeader([]string{"ID", "Endpoint", "Status", "Name", "Disponibility"}),
	)
	for _, e := range run.Endpoints {
		disp := ""
		if e.Availability != nil {
			disp = strconv.FormatFloat(*e.Availability, 'f', 4, 64)
		}
		table.Append([]string{strconv.Itoa(e.RequestID), string(e.Endpoint), string(e.Status), e.ServiceName, disp})
	}
	table.Render()
	return nil
}

// compositeColor is green for a healthy composite, blue otherwise.
func (c *Console) compositeColor(v float64) *color.Color {
	if availability.IsHealthy(v, c.threshold) {
		return c.green
	}
	return c.blue
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
