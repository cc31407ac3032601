package board

// Hash returns a 64-bit fingerprint of the position, used as the
// transposition table probe key (spec.md §3, §5.4). It combines the three
// occupancy/direction planes, food, hazards, and each snake's mutable
// fields; board shape and mode are part of a search's fixed context and are
// deliberately excluded since a single search never mixes boards of
// different shape.
func (b *Board) Hash() uint64 {
	h := b.Bodies[0].Hash()
	h = mix(h, b.Bodies[1].Hash())
	h = mix(h, b.Bodies[2].Hash())
	h = mix(h, b.Food.Hash())
	h = mix(h, b.HazardMask.Hash())
	h = mix(h, uint64(b.Turn))
	for _, sn := range b.Snakes {
		h = mix(h, uint64(sn.Head))
		h = mix(h, uint64(sn.Tail))
		h = mix(h, uint64(sn.Length))
		h = mix(h, uint64(uint32(sn.Health)))
		h = mix(h, uint64(sn.CurledBodyParts))
	}
	return h
}

func mix(h, v uint64) uint64 {
	h ^= v
	h *= 1099511628211
	return h
}
