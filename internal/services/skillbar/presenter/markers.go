package presenter

// Markers are the emoji placed next to values in rendered text. Custom guild
// emoji use the "<:name:id>" form.
type Markers struct {
	Template   string `env:"TEMPLATE"`
	Upkeep     string `env:"UPKEEP"`
	Adrenaline string `env:"ADRENALINE"`
	Energy     string `env:"ENERGY"`
	Sacrifice  string `env:"SACRIFICE"`
	Activation string `env:"ACTIVATION"`
	Recharge   string `env:"RECHARGE"`
	Overcast   string `env:"OVERCAST"`
}

// DefaultMarkers uses stock Unicode emoji so a bot works without custom
// guild emoji.
func DefaultMarkers() Markers {
	return Markers{
		Template:   "📜",
		Upkeep:     "🔁",
		Adrenaline: "💢",
		Energy:     "🔷",
		Sacrifice:  "🩸",
		Activation: "⏳",
		Recharge:   "⌛",
		Overcast:   "🔥",
	}
}

// WithDefaults fills every empty marker from DefaultMarkers.
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	fill := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fill(&m.Template, d.Template)
	fill(&m.Upkeep, d.Upkeep)
	fill(&m.Adrenaline, d.Adrenaline)
	fill(&m.Energy, d.Energy)
	fill(&m.Sacrifice, d.Sacrifice)
	fill(&m.Activation, d.Activation)
	fill(&m.Recharge, d.Recharge)
	fill(&m.Overcast, d.Overcast)
	return m
}
