package parameter

// System execution priorities (lower runs first)
const (
	PriorityPlayer = 10
	PriorityWeapon = 20
	PriorityMelee  = 30
	PriorityEnemy  = 40
	PriorityBullet = 50
	PriorityDeath  = 900 // After all damage sources
)
