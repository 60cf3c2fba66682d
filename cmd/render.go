package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/climatiq-tools/carbon-adviser/internal/ai"
	"github.com/climatiq-tools/carbon-adviser/internal/engine"
)

// printer gives thousand separators in rendered numbers.
var printer = message.NewPrinter(language.English)

func renderResult(w io.Writer, result *engine.Result, goal *engine.Goal) {
	path := engine.PathCarbon
	if goal != nil {
		path = goal.Path
	}
	unit := path.Unit()

	switch result.Kind {
	case engine.KindNoGoal:
		fmt.Fprintln(w, "Top reduction opportunities for your industry:")
	case engine.KindSingle:
		printer.Fprintf(w, "A single action can close your target gap of %.1f %s:\n", result.TargetGap, unit)
	case engine.KindCombo:
		printer.Fprintf(w, "No single action closes the gap of %.1f %s; combined strategy:\n", result.TargetGap, unit)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tMEASURE\tSYSTEM\tSHARE\tIMPACT (%s)\tINVESTMENT\tANNUAL SAVING\tPAYBACK (Y)\n", unit)
	for i, item := range result.Items {
		printer.Fprintf(tw, "%d\t%s\t%s\t%.1f%%\t%.1f\t%.0f\t%.0f\t%.1f\n",
			i+1,
			item.MeasureType,
			item.System,
			item.SystemShare,
			engine.Impact(item, path),
			item.InvestmentCostMedian,
			item.AnnualSavingMedian,
			item.PaybackYearsMedian,
		)
	}
	tw.Flush()

	switch result.Kind {
	case engine.KindSingle:
		if len(result.Items) > 1 {
			fmt.Fprintln(w, "The first action alone meets the goal; the others are alternatives.")
		}
	case engine.KindCombo:
		printer.Fprintf(w, "Combined impact: %.1f %s (target gap %.1f %s)\n",
			result.TotalImpact, unit, result.TargetGap, unit)
		if result.TotalImpact < result.TargetGap {
			fmt.Fprintln(w, "Even all candidates together fall short of the goal.")
		}
	}
}

func renderAdvice(w io.Writer, advice *ai.Advice, result *engine.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Adoption advice:")
	fmt.Fprintf(w, "  %s\n", advice.Summary)

	for _, item := range result.Items {
		note, ok := advice.Notes[item.MeasureType]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", item.MeasureType, note)
	}
}
