package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Supported render formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// profitView is the serialized shape of a profit listing. Amounts render as
// fixed two-decimal strings in every format.
type profitView struct {
	Revenue  string   `json:"revenue" yaml:"revenue"`
	Expenses string   `json:"expenses" yaml:"expenses"`
	Profit   string   `json:"profit" yaml:"profit"`
	Notices  []string `json:"notices,omitempty" yaml:"notices,omitempty"`
}

type driverView struct {
	DriverNumber  int    `json:"driver_number" yaml:"driver_number"`
	Name          string `json:"name" yaml:"name"`
	BalanceDue    string `json:"balance_due" yaml:"balance_due"`
	TotalPayments string `json:"total_payments" yaml:"total_payments"`
}

type driverListingView struct {
	Drivers      []driverView `json:"drivers" yaml:"drivers"`
	TotalBalance string       `json:"total_balance" yaml:"total_balance"`
}

// RenderProfit renders the profit listing in the requested format.
func (g *Generator) RenderProfit(listing *ProfitListing, format string) ([]byte, error) {
	view := profitView{
		Revenue:  listing.Revenue.StringFixed(2),
		Expenses: listing.Expenses.StringFixed(2),
		Profit:   listing.Profit.StringFixed(2),
		Notices:  listing.Notices,
	}

	switch format {
	case FormatText:
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Total revenue:\t%s\n", view.Revenue)
		fmt.Fprintf(w, "Total expenses:\t%s\n", view.Expenses)
		fmt.Fprintf(w, "Profit:\t%s\n", view.Profit)
		if err := w.Flush(); err != nil {
			return nil, err
		}
		for _, notice := range view.Notices {
			fmt.Fprintf(&buf, "Note: %s\n", notice)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return marshalJSON(view)
	case FormatYAML:
		return yaml.Marshal(view)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// RenderDrivers renders the driver financial listing in the requested format.
func (g *Generator) RenderDrivers(listing *DriverListing, format string) ([]byte, error) {
	view := driverListingView{
		Drivers:      []driverView{},
		TotalBalance: listing.TotalBalance.StringFixed(2),
	}
	for _, d := range listing.Drivers {
		view.Drivers = append(view.Drivers, driverView{
			DriverNumber:  d.DriverNumber,
			Name:          d.Name,
			BalanceDue:    d.BalanceDue.StringFixed(2),
			TotalPayments: d.TotalPayments.StringFixed(2),
		})
	}

	switch format {
	case FormatText:
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DRIVER\tNAME\tBALANCE DUE\tTOTAL PAYMENTS")
		for _, d := range view.Drivers {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.DriverNumber, d.Name, d.BalanceDue, d.TotalPayments)
		}
		fmt.Fprintf(w, "\tTOTAL\t%s\t\n", view.TotalBalance)
		if err := w.Flush(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return marshalJSON(view)
	case FormatYAML:
		return yaml.Marshal(view)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func marshalJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}
