package astutil

import "sort"

// SlotsUsed models EVM storage packing: widths are laid into 256-bit slots
// in order, each slot holding as many consecutive widths as fit.
func SlotsUsed(widths []uint16) uint32 {
	var slots uint32
	var bitsInSlot uint32
	for _, w := range widths {
		if bitsInSlot+uint32(w) > 256 {
			slots++
			bitsInSlot = uint32(w)
		} else {
			bitsInSlot += uint32(w)
		}
	}
	if bitsInSlot > 0 {
		slots++
	}
	return slots
}

// Packable reports whether widths would use fewer storage slots sorted
// ascending than in their original declaration order.
func Packable(widths []uint16) bool {
	sorted := make([]uint16, len(widths))
	copy(sorted, widths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return SlotsUsed(sorted) < SlotsUsed(widths)
}
