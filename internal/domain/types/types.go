// Package types contains common types used across the application.
package types

// Kind distinguishes powered from unpowered rolling stock.
type Kind int

const (
	KindEngine Kind = iota
	KindWagon
)

// String returns the consist-file token for the kind.
func (k Kind) String() string {
	if k == KindEngine {
		return "Engine"
	}
	return "Wagon"
}

// Traction is the power source of a locomotive class.
type Traction int

const (
	TractionUnknown Traction = iota
	TractionElectric
	TractionDiesel
	TractionSteam
)

func (t Traction) String() string {
	switch t {
	case TractionElectric:
		return "Electric"
	case TractionDiesel:
		return "Diesel"
	case TractionSteam:
		return "Steam"
	default:
		return "Unknown"
	}
}

// Phase identifies which stage of the resolution cascade produced a match.
type Phase int

const (
	PhaseUnresolved Phase = iota
	PhaseExactName
	PhaseTokenAll
	PhaseLocalFolder
	PhaseDigitNear
	PhaseWildcard
	PhaseSemantic
	PhaseTokenPartial
	PhaseDefaultEngine
	PhaseDefaultWagon
	PhaseGlobalScore
)

func (p Phase) String() string {
	switch p {
	case PhaseExactName:
		return "EXACT_NAME"
	case PhaseTokenAll:
		return "KEY_TOKEN_ALL"
	case PhaseLocalFolder:
		return "LOCAL_FOLDER"
	case PhaseDigitNear:
		return "DIGIT_NEAR"
	case PhaseWildcard:
		return "WILDCARD_MATCH"
	case PhaseSemantic:
		return "SEMANTIC_MATCH"
	case PhaseTokenPartial:
		return "KEY_TOKEN_PARTIAL"
	case PhaseDefaultEngine:
		return "DEFAULT_ENGINE"
	case PhaseDefaultWagon:
		return "DEFAULT_WAGON"
	case PhaseGlobalScore:
		return "GLOBAL_SCORE"
	default:
		return "UNRESOLVED"
	}
}

// Subtype labels used by the attribute detectors.
const (
	SubtypePassenger = "Passenger"
	SubtypeFreight   = "Freight"
	SubtypeCaboose   = "Caboose"
	SubtypeService   = "Service"
)
