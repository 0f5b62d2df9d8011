package rpg

import "math"

// Saturation classification returned by Health.IsSaturated.
const (
	Hungry        = -1
	Normal        = 0
	Oversaturated = 1
)

// Health tracks hit points, saturation (stamina) and accumulated
// nutrients. The saturation range comes from tuning at construction.
type Health struct {
	Health     float64
	Saturation float64
	Nutrient   map[string]float64

	satMin, satMax float64
}

func NewHealth(health, saturation float64, nutrient map[string]float64, satMin, satMax float64) *Health {
	n := make(map[string]float64, len(nutrient))
	for k, v := range nutrient {
		n[k] = v
	}
	return &Health{
		Health:     health,
		Saturation: saturation,
		Nutrient:   n,
		satMin:     satMin,
		satMax:     satMax,
	}
}

func (h *Health) SaturationRange() (min, max float64) {
	return h.satMin, h.satMax
}

func (h *Health) IsSaturated() int {
	switch {
	case h.Saturation < h.satMin:
		return Hungry
	case h.Saturation > h.satMax:
		return Oversaturated
	default:
		return Normal
	}
}

// NutrientLevel maps an accumulated amount onto [0,1) with diminishing
// returns: 1 - exp(-amount/50).
func (h *Health) NutrientLevel(name string) float64 {
	return 1 - math.Exp(-h.Nutrient[name]/50)
}

// NutrientBalance is the mean of all nutrient levels.
func (h *Health) NutrientBalance() float64 {
	if len(h.Nutrient) == 0 {
		return 0
	}
	var sum float64
	for name := range h.Nutrient {
		sum += h.NutrientLevel(name)
	}
	return sum / float64(len(h.Nutrient))
}

func (h *Health) AddSaturation(n float64) {
	h.Saturation += n
}

func (h *Health) AddNutrient(name string, n float64) {
	if h.Nutrient == nil {
		h.Nutrient = map[string]float64{}
	}
	h.Nutrient[name] += n
}
