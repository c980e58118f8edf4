package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// moveCacheKey is (extended-FEN, filter) per §4.6's caching section.
// The FEN already encodes the deploy-session fingerprint (the DEPLOY
// suffix), so two positions mid-deploy vs. not never collide.
type moveCacheKey struct {
	fen       string
	square    Square
	hasSquare bool
	class     PieceClass
	hasClass  bool
	legal     bool
}

// moveCache is a bounded LRU from (position, filter) to a legal-move
// list, owned exclusively by one Game Controller instance - never
// shared across games, per §5's resource model.
type moveCache struct {
	lru *lru.Cache[moveCacheKey, []Move]
}

// newMoveCache builds a cache with the given capacity (see
// engineconfig.Config.MoveCacheCapacity).
func newMoveCache(capacity int) *moveCache {
	if capacity <= 0 {
		capacity = 1
	}
	c, _ := lru.New[moveCacheKey, []Move](capacity)
	return &moveCache{lru: c}
}

func (m *moveCache) get(key moveCacheKey) ([]Move, bool) {
	return m.lru.Get(key)
}

func (m *moveCache) put(key moveCacheKey, moves []Move) {
	m.lru.Add(key, moves)
}

// invalidate drops every cached entry. Called on any applied move,
// Place, Remove, or deploy-session transition, per §4.6.
func (m *moveCache) invalidate() {
	m.lru.Purge()
}
