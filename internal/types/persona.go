package types

// Persona names a preference profile that maps place categories to relative
// weights. Weights are relative, not probabilities; they need not sum to 1.
type Persona string

const (
	PersonaFoodie           Persona = "foodie"
	PersonaAdventurer       Persona = "adventurer"
	PersonaCulturalExplorer Persona = "culturalExplorer"
	PersonaRelaxer          Persona = "relaxer"
	PersonaShopaholic       Persona = "shopaholic"
	PersonaDefault          Persona = "default"
)

// PersonaWeights is a weight vector over the six allocatable categories.
// Lodging is excluded: accommodation is not scheduled into day slots.
type PersonaWeights map[PlaceCategory]float64

var personaWeights = map[Persona]PersonaWeights{
	PersonaFoodie: {
		CategoryCultural: 0.2, CategoryNatural: 0.1, CategoryEntertainment: 0.1,
		CategoryShopping: 0.1, CategoryReligious: 0.1, CategoryDining: 0.4,
	},
	PersonaAdventurer: {
		CategoryCultural: 0.1, CategoryNatural: 0.4, CategoryEntertainment: 0.3,
		CategoryShopping: 0.1, CategoryReligious: 0.05, CategoryDining: 0.05,
	},
	PersonaCulturalExplorer: {
		CategoryCultural: 0.4, CategoryNatural: 0.1, CategoryEntertainment: 0.1,
		CategoryShopping: 0.1, CategoryReligious: 0.2, CategoryDining: 0.1,
	},
	PersonaRelaxer: {
		CategoryCultural: 0.1, CategoryNatural: 0.3, CategoryEntertainment: 0.2,
		CategoryShopping: 0.2, CategoryReligious: 0.05, CategoryDining: 0.15,
	},
	PersonaShopaholic: {
		CategoryCultural: 0.1, CategoryNatural: 0.05, CategoryEntertainment: 0.15,
		CategoryShopping: 0.5, CategoryReligious: 0.05, CategoryDining: 0.15,
	},
	PersonaDefault: {
		CategoryCultural: 0.25, CategoryNatural: 0.2, CategoryEntertainment: 0.15,
		CategoryShopping: 0.15, CategoryReligious: 0.1, CategoryDining: 0.15,
	},
}

// Weights resolves the persona's weight vector. Unknown personas get the
// balanced default vector.
func (p Persona) Weights() PersonaWeights {
	if w, ok := personaWeights[p]; ok {
		return w
	}
	return personaWeights[PersonaDefault]
}

func (p Persona) String() string { return string(p) }
