package component

// Kind tags the entity variant; exactly one kind-specific state is set per kind
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindRedCube
	KindFly
	KindBullet
)

var kindNames = [...]string{
	KindNone:    "None",
	KindPlayer:  "Player",
	KindRedCube: "RedCube",
	KindFly:     "Fly",
	KindBullet:  "Bullet",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind resolves a level-file type name
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if Kind(i) != KindNone && n == name {
			return Kind(i), true
		}
	}
	return KindNone, false
}

// IsEnemy reports the enemy variants counted toward the win condition
func (k Kind) IsEnemy() bool {
	return k == KindRedCube || k == KindFly
}

// IsActor reports variants that carry health and can be struck by projectiles
func (k Kind) IsActor() bool {
	return k == KindPlayer || k.IsEnemy()
}

// IsCharacter reports variants using a box body and terrain contact counters
func (k Kind) IsCharacter() bool {
	return k.IsActor()
}
