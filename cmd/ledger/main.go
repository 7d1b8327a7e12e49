package main

import (
	"flag"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"aureus/chart"
	"aureus/domain"
	"aureus/logger"
	"aureus/service"
)

// tableStep matches the ledger table: every sixth month plus the last one.
const tableStep = 6

func main() {
	def := domain.DefaultSimulationParams()

	initial := flag.Float64("initial", def.InitialInvestment, "Initial purchase amount (USD)")
	monthly := flag.Float64("monthly", def.MonthlyInvestment, "Monthly investment amount (USD)")
	discount := flag.Float64("discount", def.MonthlyDiscountRate, "Discount on every purchase (0.02 = 2%)")
	months := flag.Int("months", def.DurationMonths, "Recurring purchases after the initial one")
	growth := flag.Float64("growth", def.ExpectedAnnualGrowth, "Expected annual gold growth (0.08 = 8%)")
	spotOz := flag.Float64("oz", def.SpotPricePerOunce, "Spot price per troy ounce (USD)")
	spotKg := flag.Float64("kg", 0, "Spot price per kilogram (USD), overrides -oz")
	chartPath := flag.String("chart", "", "Write a PNG chart to this path")
	all := flag.Bool("all", false, "Print every month instead of milestones")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Pretty: true, Out: os.Stderr})

	params := domain.SimulationParams{
		InitialInvestment:    *initial,
		MonthlyInvestment:    *monthly,
		MonthlyDiscountRate:  *discount,
		DurationMonths:       *months,
		ExpectedAnnualGrowth: *growth,
		SpotPricePerOunce:    *spotOz,
	}
	if *spotKg > 0 {
		params.SpotPricePerOunce = domain.SpotPriceFromKilogram(*spotKg).PerOunce
	}

	result := service.Simulate(params)

	step := tableStep
	if *all {
		step = 1
	}
	printDashboard(os.Stdout, service.Sanitize(params), result, step)

	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *chartPath).Msg("cannot create chart file")
		}
		defer f.Close()

		if err := chart.Render(f, result, chart.DefaultOptions()); err != nil {
			log.Fatal().Err(err).Msg("cannot render chart")
		}
		log.Info().Str("path", *chartPath).Msg("chart written")
	}
}

func printDashboard(out io.Writer, p domain.SimulationParams, r domain.SimulationResult, step int) {
	pr := message.NewPrinter(language.English)
	spot := p.SpotPrice()

	pr.Fprintln(out, "")
	pr.Fprintln(out, "========================================")
	pr.Fprintln(out, "   AUREUS: GOLD DCA PROJECTION")
	pr.Fprintln(out, "========================================")

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	pr.Fprintln(w, "METRIC\tVALUE\tNOTE")
	pr.Fprintln(w, "------\t-----\t----")
	pr.Fprintf(w, "Spot Price\t$%.2f/oz\t$%.2f/kg\n", spot.PerOunce, spot.PerKilogram)
	pr.Fprintf(w, "Total Invested\t$%.2f\t%d purchases\n", r.TotalInvested, len(r.MonthlyData))
	pr.Fprintf(w, "Gold Reserves\t%.4f oz\tCost basis $%.2f/oz\n", r.TotalGoldOunces, r.AverageCostPerOunce)
	pr.Fprintf(w, "Portfolio Value\t$%.0f\t\n", r.FinalPortfolioValue)

	sign := ""
	if r.TotalProfit >= 0 {
		sign = "+"
	}
	pr.Fprintf(w, "Profit\t%s$%.2f\tROI %.2f%%\n", sign, r.TotalProfit, r.ROI)
	w.Flush()

	pr.Fprintln(out, "")
	pr.Fprintf(out, "Universal %.1f%% discount applied\n", p.MonthlyDiscountRate*100)

	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	pr.Fprintln(w, "MONTH\tMARKET\tPAID\tGOLD ADDED\tTOTAL COST\tVALUE\t")
	for _, row := range r.Milestones(step) {
		pr.Fprintf(w, "%s\t$%.2f\t$%.2f\t%.3f oz\t$%.2f\t$%.0f\t\n",
			row.Label(), row.MarketPrice, row.PurchasePrice,
			row.GoldOuncesPurchased, row.CumulativeInvested, row.PortfolioValue)
	}
	w.Flush()
	pr.Fprintln(out, "========================================")
}
