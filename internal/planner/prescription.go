package planner

import "avihayshai/hypertrophy-toolbox/internal/domain"

// Prescription is the sets/rep-range/RIR assignment for one plan slot.
type Prescription struct {
	Sets    int `json:"sets"`
	MinReps int `json:"minReps"`
	MaxReps int `json:"maxReps"`
	RIR     int `json:"rir"`
}

// repBand holds a goal×mechanic rep range split into an early-slot band and a
// late-slot band. Earlier slots are done fresher and get the lower end.
type repBand struct {
	earlyMin, earlyMax int
	lateMin, lateMax   int
	rir                int
}

var repTable = map[Goal]map[domain.Mechanic]repBand{
	GoalStrength: {
		domain.MechanicCompound:  {earlyMin: 3, earlyMax: 5, lateMin: 4, lateMax: 6, rir: 2},
		domain.MechanicIsolation: {earlyMin: 6, earlyMax: 8, lateMin: 8, lateMax: 10, rir: 2},
	},
	GoalHypertrophy: {
		domain.MechanicCompound:  {earlyMin: 6, earlyMax: 10, lateMin: 8, lateMax: 12, rir: 1},
		domain.MechanicIsolation: {earlyMin: 10, earlyMax: 12, lateMin: 12, lateMax: 15, rir: 1},
	},
	GoalEndurance: {
		domain.MechanicCompound:  {earlyMin: 12, earlyMax: 15, lateMin: 12, lateMax: 15, rir: 3},
		domain.MechanicIsolation: {earlyMin: 15, earlyMax: 20, lateMin: 15, lateMax: 20, rir: 3},
	},
}

// earlySlotCount is how many leading slots of a routine count as "early" and
// receive the lower end of the rep band.
const earlySlotCount = 2

// Prescribe derives a slot's prescription from the exercise mechanic, the
// training goal, the slot role and position, and the lifter's experience.
// Pure lookup, no randomness: same inputs, same prescription.
func Prescribe(mechanic domain.Mechanic, goal Goal, role SlotRole, slotIndex int, experience Experience) Prescription {
	if mechanic != domain.MechanicCompound {
		mechanic = domain.MechanicIsolation
	}
	band := repTable[goal][mechanic]

	p := Prescription{RIR: band.rir}
	if slotIndex < earlySlotCount {
		p.MinReps, p.MaxReps = band.earlyMin, band.earlyMax
	} else {
		p.MinReps, p.MaxReps = band.lateMin, band.lateMax
	}

	p.Sets = setsFor(role, experience)
	return p
}

// setsFor scales set count by role and experience: mains get more sets than
// accessories, novices get one set less across the board.
func setsFor(role SlotRole, experience Experience) int {
	if role == RoleMain {
		if experience == ExperienceNovice {
			return 3
		}
		return 4
	}
	if experience == ExperienceNovice {
		return 2
	}
	return 3
}

// MainSetFloor is the minimum set count a main lift may be trimmed to by the
// time-budget pass.
func MainSetFloor(experience Experience) int {
	if experience == ExperienceNovice {
		return 3
	}
	return 4
}
