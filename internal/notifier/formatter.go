package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"DominanceSentinel/internal/calculator"
	"DominanceSentinel/internal/model"
	"DominanceSentinel/internal/recorder"
)

const dateLayout = "2006-01-02"

// FormatAnalysisReport formats an analysis into a Telegram message.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s dominance</b> | %s\n\n",
		html.EscapeString(a.Pair.Name), a.Classification.Time.Format(dateLayout)))

	for _, line := range a.Report {
		b.WriteString("• ")
		b.WriteString(html.EscapeString(line))
		b.WriteString("\n")
	}

	// Range context
	high, low, err := calculator.DominanceRange(a.Series, calculator.DefaultRangeLookback)
	if err == nil {
		pos, _ := calculator.RangePosition(a.Classification.Dominance, high, low)
		b.WriteString(fmt.Sprintf("\n📏 <b>%d-day range:</b> %.2f%% ~ %.2f%% (position %.0f%%)\n",
			calculator.DefaultRangeLookback, low, high, pos*100))
	}

	b.WriteString(fmt.Sprintf("\n%s | %s | %s\n",
		a.Classification.RSISignal, a.Classification.MACDSignal, a.Classification.TrendSignal))
	return b.String()
}

// FormatNoAnalysis formats the message sent when a pair could not be analysed.
// Data problems get a neutral notice; anything else is reported as a failure.
func FormatNoAnalysis(pair model.Pair, err error) string {
	name := html.EscapeString(pair.Name)
	switch {
	case errors.Is(err, model.ErrInsufficientHistory):
		return fmt.Sprintf("ℹ️ <b>%s</b>: no analysis available, not enough history yet.", name)
	case errors.Is(err, model.ErrInvalidInputData):
		return fmt.Sprintf("ℹ️ <b>%s</b>: no analysis available, the price data was invalid.", name)
	default:
		return fmt.Sprintf("❌ <b>%s</b>: analysis failed: %s", name, html.EscapeString(err.Error()))
	}
}

// FormatGlobalSnapshot formats the market-wide dominance breakdown.
func FormatGlobalSnapshot(g *model.GlobalSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌍 <b>Global market</b> | %s\n\n", g.FetchedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("BTC dominance: %.2f%%\n", g.BTCDominance))
	b.WriteString(fmt.Sprintf("ETH dominance: %.2f%%\n", g.ETHDominance))
	b.WriteString(fmt.Sprintf("Others: %.2f%%\n", g.OthersDominance()))
	b.WriteString(fmt.Sprintf("Total market cap: %s\n", humanUSD(g.TotalMarketCap)))
	b.WriteString(fmt.Sprintf("Active cryptocurrencies: %d\n", g.ActiveCryptos))
	return b.String()
}

// FormatHistory formats the most recent stored runs for a pair.
func FormatHistory(pair string, recs []recorder.AnalysisRecord) string {
	if len(recs) == 0 {
		return fmt.Sprintf("🗂 <b>%s</b>: no stored analyses yet.", html.EscapeString(pair))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(pair)))
	for _, r := range recs {
		b.WriteString(fmt.Sprintf("%s  %.2f%%  RSI %.1f  %s/%s\n",
			r.AsOf.Format(dateLayout), r.Dominance, r.RSI, r.MACDSignal, r.TrendSignal))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /report - analyse every configured pair now\n" +
		"• /global - market-wide dominance snapshot\n" +
		"• /history - recent stored analyses\n" +
		"• /help - this message"
}

func humanUSD(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
