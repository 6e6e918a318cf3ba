package molstruct

import "sort"

// SerialMapping is a dense 0..ElementCount-1 renumbering of all elements
// across all units, with reverse lookup from serial index to
// (unit index, local element index).
type SerialMapping struct {
	unitIndex  []int32 // per serial index, the owning unit's position
	cumulative []int32 // len unitCount+1, element offset per unit position
}

// SerialMapping returns the structure's serial mapping, computing it on
// first use.
func (s *Structure) SerialMapping() *SerialMapping {
	return s.serial.Get(func() *SerialMapping {
		m := &SerialMapping{
			unitIndex:  make([]int32, s.elementCount),
			cumulative: make([]int32, len(s.units)+1),
		}
		offset := int32(0)
		for i, u := range s.units {
			m.cumulative[i] = offset
			n := int32(u.ElementCount())
			for k := int32(0); k < n; k++ {
				m.unitIndex[offset+k] = int32(i)
			}
			offset += n
		}
		m.cumulative[len(s.units)] = offset
		return m
	})
}

// Count returns the number of serial elements.
func (m *SerialMapping) Count() int { return len(m.unitIndex) }

// Locate maps a serial index to (unit position, local element index).
func (m *SerialMapping) Locate(serial int) (int, int) {
	ui := m.unitIndex[serial]
	return int(ui), serial - int(m.cumulative[ui])
}

// SerialOf maps (unit position, local element index) to the serial index.
func (m *SerialMapping) SerialOf(unitIndex, local int) int {
	return int(m.cumulative[unitIndex]) + local
}

// UnitOffset returns the cumulative element offset of the unit at the given
// position.
func (m *SerialMapping) UnitOffset(unitIndex int) int {
	return int(m.cumulative[unitIndex])
}

// UnitOf returns the unit position owning the given serial index using the
// cumulative offsets only. Equivalent to Locate but without the parallel
// array, useful when only the unit is needed.
func (m *SerialMapping) UnitOf(serial int) int {
	return sort.Search(len(m.cumulative)-1, func(i int) bool {
		return m.cumulative[i+1] > int32(serial)
	})
}
