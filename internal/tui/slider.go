package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable input with a visual bar.
type ParameterSlider struct {
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Step      decimal.Decimal
	Unit      string // e.g. "%", "€"
	Places    int32
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a slider clamped to [min, max].
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	s := &ParameterSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 24,
	}
	s.SetValue(value)
	return s
}

// WithUnit sets the unit shown next to the value.
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets the number of decimals shown.
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// Increment increases the value by one step, stopping at Max.
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by one step, stopping at Min.
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value directly, clamping to min/max.
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// Int returns the value truncated to an int.
func (p *ParameterSlider) Int() int {
	return int(p.Value.IntPart())
}

// Percentage returns the position of the value within the range.
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// RenderCompact renders label, value and a bar on one line.
func (p *ParameterSlider) RenderCompact() string {
	valueStr := p.Value.StringFixed(p.Places)
	if p.Unit == "€" {
		valueStr = "€" + valueStr
	} else if p.Unit != "" {
		valueStr += p.Unit
	}

	labelStyle := ParameterLabelStyle
	valueStyle := ParameterValueStyle
	cursor := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(ColorPrimary)
		valueStyle = valueStyle.Foreground(ColorAccent)
		cursor = "> "
	}

	return fmt.Sprintf("%s%s %s %s", cursor, labelStyle.Render(p.Label), p.renderBar(), valueStyle.Render(valueStr))
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (i == p.Width-1 && filled == p.Width):
			bar.WriteString(SliderThumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(SliderThumbStyle.Render("━"))
		default:
			bar.WriteString(SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
