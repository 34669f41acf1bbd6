package trial

// ElbowSign is +1 when shortening toward PM_PP or lengthening toward MM_MP.
func ElbowSign(c Condition, t TargetElbow) float64 {
	if (c == Shortened && t == ElbowPMPP) || (c == Lengthened && t == ElbowMMMP) {
		return 1
	}
	return -1
}

// HandSign is +1 when lengthening toward MM or PM, or shortening toward PP or MP.
func HandSign(c Condition, t TargetHand) float64 {
	switch c {
	case Lengthened:
		if t == HandMM || t == HandPM {
			return 1
		}
	case Shortened:
		if t == HandPP || t == HandMP {
			return 1
		}
	}
	return -1
}
