package studio

// ToggleObjective returns a copy of list with the enabled flag of the entry
// whose ID matches flipped. Unknown ids leave the copy unchanged.
func ToggleObjective(list []Objective, id string) []Objective {
	out := make([]Objective, len(list))
	for i, o := range list {
		if o.ID == id {
			o.Enabled = !o.Enabled
		}
		out[i] = o
	}
	return out
}

func ToggleIntegration(list []Integration, id string) []Integration {
	out := make([]Integration, len(list))
	for i, in := range list {
		if in.ID == id {
			in.Enabled = !in.Enabled
		}
		out[i] = in
	}
	return out
}

func ToggleAutomation(list []Automation, id string) []Automation {
	out := make([]Automation, len(list))
	for i, a := range list {
		if a.ID == id {
			a.Enabled = !a.Enabled
		}
		out[i] = a
	}
	return out
}

// EnabledObjectives returns the enabled subset, preserving order.
func EnabledObjectives(list []Objective) []Objective {
	var out []Objective
	for _, o := range list {
		if o.Enabled {
			out = append(out, o)
		}
	}
	return out
}

func EnabledIntegrations(list []Integration) []Integration {
	var out []Integration
	for _, in := range list {
		if in.Enabled {
			out = append(out, in)
		}
	}
	return out
}

func EnabledAutomations(list []Automation) []Automation {
	var out []Automation
	for _, a := range list {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}
