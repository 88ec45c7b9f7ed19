package demstats

// An ExtremumKind is the kind of a local extremum.
type ExtremumKind int

// Extremum kinds.
const (
	Minimum ExtremumKind = iota
	Maximum
)

func (k ExtremumKind) String() string {
	switch k {
	case Minimum:
		return "min"
	case Maximum:
		return "max"
	default:
		return "unknown"
	}
}

// An Extremum is a local extremum of a sequence.
type Extremum struct {
	Index int
	Kind  ExtremumKind
}

type direction int

const (
	up direction = iota
	down
)

// LocalExtrema returns the interior local extrema of values in order, using
// less to compare values. The first and last values are never extrema and
// consecutive extrema alternate in kind. A run of equal values continues the
// current direction.
func LocalExtrema[T any](values []T, less func(a, b T) bool) []Extremum {
	if len(values) < 2 {
		return nil
	}

	currentDirection := up
	if less(values[1], values[0]) {
		currentDirection = down
	}

	var extrema []Extremum
	for i := 2; i < len(values); i++ {
		var stepDirection direction
		switch prev, value := values[i-1], values[i]; {
		case less(value, prev):
			stepDirection = down
		case less(prev, value):
			stepDirection = up
		default:
			continue
		}
		if stepDirection == currentDirection {
			continue
		}
		kind := Maximum
		if stepDirection == up {
			kind = Minimum
		}
		extrema = append(extrema, Extremum{
			Index: i - 1,
			Kind:  kind,
		})
		currentDirection = stepDirection
	}
	return extrema
}
