package engine

// airDefenseRange gives the orthogonal reach (in squares) of an
// air-defense source, before any heroic bonus.
var airDefenseRange = map[PieceClass]int{
	AntiAir: 3,
	Missile: 4,
	Navy:    3,
}

// AirDefenseMap tracks, per color, the set of squares under that
// color's air defense - the zone a hostile AirForce must treat
// specially per §4.3. It is recomputed from scratch on demand; callers
// (the Game Controller) decide when a state change warrants a refresh.
type AirDefenseMap struct {
	zones [2]BitSet256
}

// NewAirDefenseMap returns an empty map (call Recompute before use).
func NewAirDefenseMap() *AirDefenseMap {
	return &AirDefenseMap{}
}

// IsDefended reports whether sq lies in byColor's air-defense zone.
func (a *AirDefenseMap) IsDefended(sq Square, byColor Color) bool {
	return a.zones[byColor].Has(sq)
}

// Zone returns the full defended-squares bit-set for byColor.
func (a *AirDefenseMap) Zone(byColor Color) BitSet256 {
	return a.zones[byColor]
}

// Recompute rebuilds both colors' zones from pos and sm. Air-defense
// sources inside a stack contribute from the carrier's square, using
// their own (the carried piece's) range - an Engineer-carried Missile
// still projects a Missile-range footprint, from wherever the Engineer
// sits.
func (a *AirDefenseMap) Recompute(pos *Position, sm *StackManager) {
	a.zones[Red] = BitSet256{}
	a.zones[Blue] = BitSet256{}

	for cls, baseRange := range airDefenseRange {
		for _, sq := range pos.ClassSet(cls).Squares() {
			piece := pos.PieceAt(sq)
			a.project(sq, piece, baseRange)
		}
	}

	for sq, stack := range sm.all() {
		for _, carried := range stack.Carried {
			baseRange, ok := airDefenseRange[carried.Class()]
			if !ok {
				continue
			}
			a.project(sq, carried, baseRange)
		}
	}
}

// project adds source's orthogonal footprint (at rng, +1 if heroic)
// centered on sq into source.Color()'s zone. Reach does not pass the
// board edge; blocking pieces are ignored per §4.3.
func (a *AirDefenseMap) project(sq Square, source Piece, baseRange int) {
	rng := baseRange
	if source.Heroic() {
		rng++
	}
	zone := &a.zones[source.Color()]
	zone.Set(sq)
	for _, d := range orthogonalDirs {
		cur := sq
		for step := 0; step < rng; step++ {
			next := cur.step(d)
			if next == NoSquare {
				break
			}
			zone.Set(next)
			cur = next
		}
	}
}

// all exposes the side table for iteration by Recompute without
// leaking mutation access - StackManager keeps ownership of the map.
func (m *StackManager) all() map[Square]*Stack {
	return m.bySquare
}
