package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (arrows, Enter, Ctrl+*)
	Keys map[tcell.Key]Action
	// Printable rune bindings
	Runes map[rune]Action
}

// DefaultKeyTable returns the stock bindings: a/d or arrows move, w/space jump
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Action{
			tcell.KeyLeft:   ActionMoveLeft,
			tcell.KeyRight:  ActionMoveRight,
			tcell.KeyUp:     ActionAimUp,
			tcell.KeyDown:   ActionAimDown,
			tcell.KeyEnter:  ActionFire,
			tcell.KeyTab:    ActionSwap,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlS:  ActionToggleMute,
		},
		Runes: map[rune]Action{
			'a': ActionMoveLeft,
			'd': ActionMoveRight,
			'w': ActionJump,
			' ': ActionJump,
			'k': ActionAimUp,
			'j': ActionAimDown,
			'f': ActionFire,
			'g': ActionAltFire,
			'e': ActionReload,
			'v': ActionMelee,
			's': ActionDash,
			'1': ActionSelectPrimary,
			'2': ActionSelectSecondary,
			'q': ActionSwap,
			'r': ActionRestart,
			'm': ActionToggleMute,
			'Q': ActionQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Keys:  maps.Clone(kt.Keys),
		Runes: maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event to its bound action
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to ActionNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if result.Keys == nil {
		result.Keys = make(map[tcell.Key]Action)
	}
	if result.Runes == nil {
		result.Runes = make(map[rune]Action)
	}
	mergeMap(result.Keys, override.Keys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]Action) {
	for k, v := range override {
		if v == ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
