package engine

import "errors"

// ErrInvalidAction marks an action that is illegal in the current phase or
// state: avoiding twice in a row, facing a faced card, fighting with a
// restricted weapon, acting after game over. The action is rejected
// synchronously and the game state is unchanged; callers discriminate with
// errors.Is and retry with a corrected action.
var ErrInvalidAction = errors.New("engine: invalid action")

// ErrInvalidDungeonConfig marks a malformed or under-sized card pool handed
// to New. Fatal: no game is created.
var ErrInvalidDungeonConfig = errors.New("engine: invalid dungeon config")
