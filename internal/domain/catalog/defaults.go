package catalog

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		LeagueNames: []string{"Premier Division", "The Championship", "League One"},
		Rosters: [][]string{
			{
				"Manchester Blue", "Manchester Red", "London Cannons", "North London Whites",
				"Merseyside Red", "Merseyside Blue", "Chelsea Blues", "Newcastle Stripes",
				"Villa Midlands", "West Ham Irons",
			},
			{
				"Leeds United", "Sunderland Cats", "Leicester Foxes", "Southampton Saints",
				"Norwich Canaries", "Watford Hornets", "West Brom Baggies", "Stoke Potters",
				"Middlesbrough Boro", "Blackburn Rovers",
			},
			{
				"Wrexham Dragons", "Birmingham Blues", "Huddersfield Terriers", "Bolton Wanderers",
				"Charlton Athletic", "Reading Royals", "Wigan Latics", "Blackpool Tangerines",
				"Portsmouth Pompey", "Derby Rams",
			},
		},
		Nations: []string{
			"France", "Germany", "Brazil", "Argentina", "Spain", "Italy", "Netherlands", "Portugal", "Belgium",
		},
		StarterClubs: []StarterClub{
			{Name: "Wrexham Dragons", Description: "Hollywood owners, big dreams.", Wage: 90, SigningBonus: 100},
			{Name: "Portsmouth Pompey", Description: "Historic club with loud fans.", Wage: 80, SigningBonus: 0},
			{Name: "Derby Rams", Description: "Sleeping giant needing a hero.", Wage: 120, SigningBonus: 50},
		},
		SquadNames: []string{
			"J. Smith (GK)", "M. Rossi (DEF)", "K. Tanaka (DEF)", "L. Silva (DEF)", "P. Jones (MID)",
			"A. Ivanov (MID)", "C. Gallagher (MID)", "B. Meyer (FW)", "T. O'Connor (FW)",
		},
		Items: []Item{
			{ID: "energy_drink", Name: "Energy Drink", Type: Consumable, Cost: 25,
				Effects: ItemEffects{Energy: 30}, Description: "Quick boost to get back on the pitch."},
			{ID: "video_game", Name: "New Video Game", Type: Consumable, Cost: 60,
				Effects: ItemEffects{Energy: -5, Morale: 25}, Description: "Relax and recover mental state."},
			{ID: "party", Name: "Host House Party", Type: Consumable, Cost: 200,
				Effects: ItemEffects{Energy: -20, Morale: 50, Clout: 100, Form: -10}, Description: "Great for morale, bad for sleep."},
			{ID: "boots_speed", Name: "Speedster Boots", Type: Gear, Cost: 500,
				Effects: ItemEffects{Morale: 10, Fitness: 5}, Description: "Lightweight. Permanently +5 Fitness."},
			{ID: "boots_precision", Name: "Sniper Boots", Type: Gear, Cost: 750,
				Effects: ItemEffects{Morale: 10, Attacking: 5}, Description: "Enhanced grip. Permanently +5 Attacking."},
			{ID: "smart_watch", Name: "Pro Smart Watch", Type: Gear, Cost: 1000,
				Effects: ItemEffects{Morale: 5, Technique: 5}, Description: "Track metrics. Permanently +5 Technique."},
			{ID: "rental_property", Name: "Rental Property", Type: Asset, Cost: 10000,
				Effects: ItemEffects{Income: 100}, Description: "Passive Income: $100/week."},
			{ID: "sports_car", Name: "Sports Car", Type: Asset, Cost: 15000,
				Effects: ItemEffects{Morale: 50, Clout: 25000}, Description: "Turn heads. +25,000 Followers."},
			{ID: "brand_deal", Name: "Clothing Brand", Type: Asset, Cost: 50000,
				Effects: ItemEffects{Morale: 10, Clout: 50000, Income: 500}, Description: "Own a label. $500/week + Clout."},
		},
		Events: []NarrativeEvent{
			{
				Title: "Fan Interaction",
				Text:  "A group of young fans asks for your autograph after training.",
				Choices: []Choice{
					{Text: "Sign everything (+Morale)", Effect: ChoiceEffect{Morale: 10, Energy: -5, Clout: 50}, ResultText: "The fans are delighted!"},
					{Text: "Ignore them (-Clout)", Effect: ChoiceEffect{Clout: -50}, ResultText: "Social media is not happy about this."},
				},
			},
			{
				Title: "Extra Training",
				Text:  "The coach offers a late-night tactical session.",
				Choices: []Choice{
					{Text: "Attend (+Form, -Energy)", Effect: ChoiceEffect{Energy: -15, Form: 5}, ResultText: "You feel sharper for the next match."},
					{Text: "Go home to rest (+Energy)", Effect: ChoiceEffect{Energy: 10, Form: -2}, ResultText: "A good night's sleep does wonders."},
				},
			},
			{
				Title: "Sponsorship Opportunity",
				Text:  "A local car dealership wants you for a quick commercial.",
				Choices: []Choice{
					{Text: "Do the ad (+$500)", Effect: ChoiceEffect{Morale: -5, Energy: -5, Cash: 500, Clout: 20}, ResultText: "It was cheesy, but it pays the bills."},
					{Text: "Focus on football", Effect: ChoiceEffect{Morale: 5}, ResultText: "Dedication is key."},
				},
			},
			{
				Title: "Team Bonding",
				Text:  "The squad is going out for a team dinner.",
				Choices: []Choice{
					{Text: "Join them (-$50, +Morale)", Effect: ChoiceEffect{Morale: 15, Energy: -5, Cash: -50}, ResultText: "Great vibes in the squad."},
					{Text: "Stay in", Effect: ChoiceEffect{Morale: -5, Energy: 5}, ResultText: "You saved some money."},
				},
			},
		},
	}
}
