package perturbation

import "clarity/domain/clarity"

// Enumerate returns every (axis, value, seed) grid point a sweep must
// visit, in canonical order: axes alphabetical, values in declared order,
// seeds in declared order (§4.2, GLOSSARY "Canonical order").
func Enumerate(spec *clarity.SweepSpec) []clarity.GridPoint {
	byName := make(map[clarity.AxisName]clarity.PerturbationAxis, len(spec.Axes))
	names := make([]clarity.AxisName, 0, len(spec.Axes))
	for _, axis := range spec.Axes {
		byName[axis.Name] = axis
		names = append(names, axis.Name)
	}
	names = clarity.SortedAxisNames(names)

	var points []clarity.GridPoint
	for _, name := range names {
		axis := byName[name]
		for _, value := range axis.Values {
			for _, seed := range spec.Seeds {
				points = append(points, clarity.GridPoint{
					Axis:         name,
					Value:        value,
					ValueEncoded: clarity.EncodeValue(value),
					Seed:         seed,
				})
			}
		}
	}
	return points
}
