package derive

import "math"

const (
	// solarRadiusAU converts a separation in solar radii to astronomical units.
	solarRadiusAU = 0.004649183820234682
	secondsPerDay = 86400.0
	daysPerYear   = 360.0
)

// Default returns the built-in registry, in evaluation order.
func Default() *Registry {
	return New(
		pow10("effective_T", "log_Teff", "effective temperature of the primary (K)"),
		pow10("effective_T_2", "log_Teff_2", "effective temperature of the secondary (K)"),
		pow10("luminosity", "log_L", "luminosity of the primary (Lsun)"),
		pow10("luminosity_2", "log_L_2", "luminosity of the secondary (Lsun)"),
		pow10("radius", "log_R", "radius of the primary (Rsun)"),
		pow10("radius_2", "log_R_2", "radius of the secondary (Rsun)"),
		ratio("rl_overflow_1", "star_1_radius", "rl_1", "primary radius over its Roche lobe"),
		ratio("rl_overflow_2", "star_2_radius", "rl_2", "secondary radius over its Roche lobe"),
		ratio("mass_ratio", "star_1_mass", "star_2_mass", "primary over secondary mass"),
		Field{
			Name:     "separation_au",
			Requires: []string{"binary_separation"},
			Doc:      "orbital separation (AU)",
			Compute: perRow(func(in Inputs, i int) float64 {
				return in["binary_separation"][i] * solarRadiusAU
			}),
		},
		Field{
			Name:     "lg_rlof_mdot_1",
			Requires: []string{"lg_mstar_dot_1", "lg_wind_mdot_1"},
			Doc:      "log10 of the primary mass-loss rate not carried by winds",
			Compute: perRow(func(in Inputs, i int) float64 {
				return math.Log10(math.Pow(10, in["lg_mstar_dot_1"][i]) - math.Pow(10, in["lg_wind_mdot_1"][i]))
			}),
		},
		Field{
			Name:     "log10_J_div_Jdot_div_P",
			Requires: []string{"J_orb", "Jdot", "period_days"},
			Doc:      "log10 of the angular momentum loss timescale in orbital periods",
			Compute: perRow(func(in Inputs, i int) float64 {
				return guardedLog10((in["J_orb"][i] / math.Abs(in["Jdot"][i])) / (in["period_days"][i] * secondsPerDay))
			}),
		},
		Field{
			Name:     "log10_M_div_Mdot_div_P",
			Requires: []string{"star_1_mass", "lg_mstar_dot_1", "period_days"},
			Doc:      "log10 of the primary mass loss timescale in orbital periods",
			Compute: perRow(func(in Inputs, i int) float64 {
				return guardedLog10((in["star_1_mass"][i] / math.Pow(10, in["lg_mstar_dot_1"][i])) / (in["period_days"][i] / daysPerYear))
			}),
		},
		ratio("R1_div_a", "star_1_radius", "binary_separation", "primary radius over the separation"),
		Field{
			Name:     "CE_phase",
			Requires: []string{"period_days"},
			Doc:      "common envelope flag, always 0",
			Compute: func(_ Inputs, rows int) ([]float64, error) {
				return make([]float64, rows), nil
			},
		},
	)
}

// guardedLog10 returns Sentinel for an exactly zero ratio.
func guardedLog10(v float64) float64 {
	if v == 0 {
		return Sentinel
	}

	return math.Log10(v)
}

func perRow(fn func(in Inputs, i int) float64) ComputeFunc {
	return func(in Inputs, rows int) ([]float64, error) {
		res := make([]float64, rows)
		for i := range rows {
			res[i] = fn(in, i)
		}

		return res, nil
	}
}

func pow10(name, source, doc string) Field {
	return Field{
		Name:     name,
		Requires: []string{source},
		Doc:      doc,
		Compute: perRow(func(in Inputs, i int) float64 {
			return math.Pow(10, in[source][i])
		}),
	}
}

func ratio(name, num, den, doc string) Field {
	return Field{
		Name:     name,
		Requires: []string{num, den},
		Doc:      doc,
		Compute: perRow(func(in Inputs, i int) float64 {
			return in[num][i] / in[den][i]
		}),
	}
}
