package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// unitPriceExtraPlaces widens the per-unit figure in the final explanation line.
const unitPriceExtraPlaces = 2

// formatter renders decimals for the explanation lines only. Breakdown values
// are never rounded.
type formatter struct {
	symbol    string
	precision int32
}

func newFormatter(cfg Config) formatter {
	return formatter{symbol: cfg.CurrencySymbol, precision: cfg.DecimalPrecision}
}

func (f formatter) money(d decimal.Decimal) string {
	return f.moneyAt(d, f.precision)
}

func (f formatter) unitMoney(d decimal.Decimal) string {
	return f.moneyAt(d, f.precision+unitPriceExtraPlaces)
}

// moneyAt renders d as currency with thousands separators, e.g. $9,999.90.
func (f formatter) moneyAt(d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	digits := rounded.Abs().StringFixed(places)

	intPart, fracPart, hasFrac := strings.Cut(digits, ".")
	out := f.symbol + groupThousands(intPart)
	if hasFrac {
		out += "." + fracPart
	}
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

func (f formatter) percent(d decimal.Decimal) string {
	return d.String() + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// narrative accumulates the two ordered string lists returned with a result.
type narrative struct {
	f           formatter
	applied     []string
	explanation []string
}

func newNarrative(f formatter, base decimal.Decimal, quantity int, subtotal decimal.Decimal) *narrative {
	return &narrative{
		f:       f,
		applied: []string{},
		explanation: []string{
			fmt.Sprintf("Base price: %s per unit", f.money(base)),
			fmt.Sprintf("Subtotal for %d units: %s", quantity, f.money(subtotal)),
		},
	}
}

func (n *narrative) customerGroup(d GroupDiscount, amount decimal.Decimal) {
	n.applied = append(n.applied,
		fmt.Sprintf("Customer group discount: %s (%s)", d.GroupName, n.f.percent(d.Percent)))
	n.explanation = append(n.explanation,
		fmt.Sprintf("Customer group discount (%s): -%s (%s)", d.GroupName, n.f.money(amount), n.f.percent(d.Percent)))
}

func (n *narrative) category(d CategoryDiscount, amount decimal.Decimal) {
	n.applied = append(n.applied,
		fmt.Sprintf("Category discount: %s minimum order %d units (%s)", d.CategoryName, d.MinimumOrder, n.f.percent(d.Percent)))
	n.explanation = append(n.explanation,
		fmt.Sprintf("Category discount (%s - min %d units): -%s (%s)", d.CategoryName, d.MinimumOrder, n.f.money(amount), n.f.percent(d.Percent)))
}

func (n *narrative) final(finalPrice, unitPrice decimal.Decimal) {
	n.explanation = append(n.explanation,
		fmt.Sprintf("Final price: %s (%s per unit)", n.f.money(finalPrice), n.f.unitMoney(unitPrice)))
}
