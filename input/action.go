// Package input maps terminal key events onto player intent
// Terminals report key presses and repeats but no releases, so held actions
// expire after a hold window unless refreshed by auto-repeat
package input

// Action is a bindable semantic input
type Action uint8

const (
	ActionNone Action = iota

	// Held, refreshed by key repeat
	ActionMoveLeft
	ActionMoveRight
	ActionAimUp
	ActionAimDown
	ActionFire

	// Edges, consumed by the next fixed step
	ActionJump
	ActionAltFire
	ActionReload
	ActionMelee
	ActionDash
	ActionSelectPrimary
	ActionSelectSecondary
	ActionSwap

	// Session level, handled by the binary
	ActionRestart
	ActionToggleMute
	ActionQuit

	ActionCount
)

// actionNames are the canonical names accepted by keymap files
var actionNames = [ActionCount]string{
	ActionNone:            "none",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionAimUp:           "aim_up",
	ActionAimDown:         "aim_down",
	ActionFire:            "fire",
	ActionJump:            "jump",
	ActionAltFire:         "alt_fire",
	ActionReload:          "reload",
	ActionMelee:           "melee",
	ActionDash:            "dash",
	ActionSelectPrimary:   "select_primary",
	ActionSelectSecondary: "select_secondary",
	ActionSwap:            "swap",
	ActionRestart:         "restart",
	ActionToggleMute:      "toggle_mute",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction resolves a canonical action name; "none" unbinds a key
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// IsSession reports actions the session never sees
func (a Action) IsSession() bool {
	return a >= ActionRestart && a < ActionCount
}
