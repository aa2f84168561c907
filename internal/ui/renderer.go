package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/scoundrel/internal/game/card"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
	"github.com/cory-johannsen/scoundrel/internal/game/room"
)

// Renderer formats game state as colored terminal text.
type Renderer struct {
	out         io.Writer
	color       bool
	clearScreen bool
}

// NewRenderer creates a Renderer writing to out. When color is false all
// output is plain text.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

// SetClearScreen makes State clear the terminal before rendering.
func (r *Renderer) SetClearScreen(on bool) {
	r.clearScreen = on
}

func (r *Renderer) wrap(color, text string) string {
	if !r.color {
		return text
	}
	return Colorize(color, text)
}

func (r *Renderer) wrapf(color, format string, args ...interface{}) string {
	return r.wrap(color, fmt.Sprintf(format, args...))
}

func kindColor(k card.Kind) string {
	switch k {
	case card.Monster:
		return BrightRed
	case card.Weapon:
		return BrightCyan
	case card.Potion:
		return BrightGreen
	default:
		return White
	}
}

// Title prints the startup banner.
func (r *Renderer) Title() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.wrap(BrightYellow, "====================[ SCOUNDREL ]===================="))
	fmt.Fprintln(r.out, r.wrap(Dim, " A single player rogue-like card game by Zach Gage and Kurt Bieg"))
	fmt.Fprintln(r.out, r.wrap(BrightYellow, "====================================================="))
	fmt.Fprintln(r.out)
}

// State prints the status bar and the current room.
func (r *Renderer) State(st engine.State) {
	if r.clearScreen {
		fmt.Fprint(r.out, "\033[2J\033[H")
	}
	fmt.Fprintln(r.out)
	r.statusBar(st)
	if st.Room != nil {
		r.room(st)
	}
}

func (r *Renderer) statusBar(st engine.State) {
	var b strings.Builder

	b.WriteString(r.wrapf(Yellow, "Turn %d", st.Turn))
	b.WriteString("  ")

	healthColor := BrightGreen
	switch {
	case st.Player.Health*4 <= st.Player.MaxHealth:
		healthColor = BrightRed
	case st.Player.Health*2 <= st.Player.MaxHealth:
		healthColor = BrightYellow
	}
	b.WriteString(r.wrapf(healthColor, "HP %d/%d", st.Player.Health, st.Player.MaxHealth))
	b.WriteString("  ")

	if w := st.Player.Weapon; w != nil {
		if w.Used {
			b.WriteString(r.wrapf(BrightCyan, "Weapon: %s (DMG %d, max kill %d)",
				w.Card.Name, w.Card.Value, w.LastKill))
		} else {
			b.WriteString(r.wrapf(BrightCyan, "Weapon: %s (DMG %d)", w.Card.Name, w.Card.Value))
		}
	} else {
		b.WriteString(r.wrap(Dim, "No weapon"))
	}
	b.WriteString("  ")
	b.WriteString(r.wrapf(White, "Deck: %d", st.DeckCount))

	fmt.Fprintln(r.out, b.String())
}

func (r *Renderer) room(st engine.State) {
	fmt.Fprintln(r.out, r.wrap(Cyan, "Current room:"))
	faced := 0
	for _, rc := range st.Room.Cards {
		if rc.Faced {
			faced++
			fmt.Fprintf(r.out, "  %s\n", r.wrapf(Dim, "[%d] %s (faced)", rc.Index, rc.Card.Name))
			continue
		}
		line := fmt.Sprintf("[%d] %s (%s, %d)", rc.Index, rc.Card.Name, rc.Card.Kind, rc.Card.Value)
		fmt.Fprintf(r.out, "  %s %s\n", r.wrap(kindColor(rc.Card.Kind), line), r.effect(st, rc.Card))
	}
	fmt.Fprintln(r.out, r.wrapf(Dim, "  Cards faced: %d/%d", faced, room.FacesPerRoom))
	if st.CanAvoid {
		fmt.Fprintln(r.out, r.wrap(Yellow, "  You may avoid this room (a)."))
	}
}

// effect describes what facing a card would do, mirroring the choice menu.
func (r *Renderer) effect(st engine.State, c card.Card) string {
	switch c.Kind {
	case card.Monster:
		parts := []string{r.wrapf(Red, "barehanded: -%d HP", c.Value)}
		if w := st.Player.Weapon; w != nil {
			if !w.Used || c.Value <= w.LastKill {
				damage := c.Value - w.Card.Value
				if damage < 0 {
					damage = 0
				}
				parts = append(parts, r.wrapf(Green, "weapon: -%d HP", damage))
			} else {
				parts = append(parts, r.wrap(Dim, "weapon: can't use"))
			}
		}
		return strings.Join(parts, " | ")
	case card.Weapon:
		if st.Player.Weapon != nil {
			return r.wrap(Dim, "equip, replaces current weapon")
		}
		return r.wrap(Dim, "equip")
	case card.Potion:
		heal := c.Value
		if missing := st.Player.MaxHealth - st.Player.Health; heal > missing {
			heal = missing
		}
		return r.wrapf(Green, "heal +%d HP", heal)
	default:
		return ""
	}
}

// Result prints the outcome of an action.
func (r *Renderer) Result(res engine.Result) {
	var b strings.Builder
	b.WriteString(r.wrap(Yellow, "> "))
	b.WriteString(res.Message)
	if res.DamageTaken > 0 {
		b.WriteString(r.wrapf(BrightRed, " [-%d HP]", res.DamageTaken))
	}
	if res.HealthGained > 0 {
		b.WriteString(r.wrapf(BrightGreen, " [+%d HP]", res.HealthGained))
	}
	fmt.Fprintln(r.out, b.String())
}

// Error prints an error message.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.wrapf(Red, "! %v", err))
}

// GameOver prints the final screen.
func (r *Renderer) GameOver(st engine.State) {
	fmt.Fprintln(r.out)
	if st.Victory {
		fmt.Fprintln(r.out, r.wrap(BrightGreen, "=== VICTORY ==="))
	} else {
		fmt.Fprintln(r.out, r.wrap(BrightRed, "=== DEFEATED ==="))
	}
	fmt.Fprintf(r.out, "Final health: %d/%d\n", st.Player.Health, st.Player.MaxHealth)
	fmt.Fprintf(r.out, "Final score:  %d\n", st.Score)
	fmt.Fprintf(r.out, "Turns played: %d\n", st.Turn)
	fmt.Fprintln(r.out)
}

// Help prints the command reference.
func (r *Renderer) Help() {
	fmt.Fprintln(r.out, r.wrap(Cyan, "Commands:"))
	fmt.Fprintln(r.out, "  <n>          face card n (weapon if possible)")
	fmt.Fprintln(r.out, "  <n> w        fight monster n with your weapon")
	fmt.Fprintln(r.out, "  <n> b        fight monster n barehanded")
	fmt.Fprintln(r.out, "  a            avoid this room")
	fmt.Fprintln(r.out, "  h            show this help")
	fmt.Fprintln(r.out, "  q            quit the game")
}
