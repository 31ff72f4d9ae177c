package runner

// Kind tags an entity as an obstacle or a coin.
type Kind uint8

const (
	KindObstacle Kind = iota
	KindCoin
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindCoin {
		return "coin"
	}
	return "obstacle"
}

// Entity is an obstacle or coin scrolling toward the player.
// Obstacles are 10x10 boxes whose X is the left edge; coins are circles
// whose X is the center. Collision tests use X and the lane center as-is.
type Entity struct {
	ID   uint32
	Kind Kind
	Lane int
	X    float64
}

// Player is the runner's position.
type Player struct {
	X    float64
	Lane int
}
