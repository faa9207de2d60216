package config

// PatchedFixture stores config info for a dmx fixture
type PatchedFixture struct {
	Name     string `yaml:"name"`
	Address  int    `yaml:"address"`
	Universe int    `yaml:"universe"`
	Profile  string `yaml:"profile"`
}

// PatchFixtures returns the default patch: the front PARs and the uplights.
func PatchFixtures() []PatchedFixture {
	s := make([]PatchedFixture, 0)

	s = append(s, patchFrontMiddlePars()...)
	s = append(s, patchUplightPars()...)

	return s
}

func patchFrontMiddlePars() []PatchedFixture {
	return []PatchedFixture{
		// left middle par
		{
			Name:     "left_middle_par",
			Address:  115,
			Universe: 1,
			Profile:  "shehds-par",
		},
		// right middle par
		{
			Name:     "right_middle_par",
			Address:  139,
			Universe: 1,
			Profile:  "shehds-par",
		},
	}
}

func patchUplightPars() []PatchedFixture {
	return []PatchedFixture{
		// left uplight par
		{
			Name:     "left_uplight_par",
			Address:  123,
			Universe: 1,
			Profile:  "shehds-par",
		},
		// right uplight par
		{
			Name:     "right_uplight_par",
			Address:  131,
			Universe: 1,
			Profile:  "shehds-par",
		},
	}
}
