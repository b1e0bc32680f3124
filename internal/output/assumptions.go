package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Income tax: 2025 brackets, general and labour tax credits treated as allowances",
	"AOW and WW premiums: flat rates on taxable income, no premium income cap",
	"Benefit thresholds are hard cliffs: one euro over removes the benefit",
	"Lump sum: pension contribution × lump-sum percentage / 10, added to taxable income",
	"All amounts settled to the cent, half-up",
}
