package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// DefaultLLMModel is used when no model is configured.
const DefaultLLMModel = string(anthropic.ModelClaudeSonnet4_5)

const llmRequestTimeout = 30 * time.Second

// LLM asks a Claude model for each decision. Any API or parse failure falls
// back to the heuristic agent, so a game never stalls on a flaky network.
type LLM struct {
	client   *anthropic.Client
	model    anthropic.Model
	fallback *Heuristic
	logger   *zap.Logger
}

// NewLLM builds a Claude-backed agent. The API key is read from the
// ANTHROPIC_API_KEY environment variable by the SDK. An empty model selects
// DefaultLLMModel.
func NewLLM(model string, logger *zap.Logger) *LLM {
	if model == "" {
		model = DefaultLLMModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := anthropic.NewClient()
	return &LLM{
		client:   &client,
		model:    anthropic.Model(model),
		fallback: NewHeuristic(),
		logger:   logger,
	}
}

// DecideAvoidRoom asks the model whether to avoid the room.
func (l *LLM) DecideAvoidRoom(state engine.State) bool {
	prompt := l.avoidPrompt(state)
	reply, err := l.ask(prompt)
	if err != nil {
		l.logger.Warn("llm avoid decision failed, using heuristic", zap.Error(err))
		return l.fallback.DecideAvoidRoom(state)
	}
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "avoid", "yes":
		return true
	case "enter", "no":
		return false
	}
	l.logger.Warn("llm avoid reply unrecognized, using heuristic", zap.String("reply", reply))
	return l.fallback.DecideAvoidRoom(state)
}

// ChooseCard asks the model which card to face and how.
func (l *LLM) ChooseCard(state engine.State, available []engine.RoomCard) (int, engine.Method) {
	prompt := l.choosePrompt(state, available)
	reply, err := l.ask(prompt)
	if err != nil {
		l.logger.Warn("llm card choice failed, using heuristic", zap.Error(err))
		return l.fallback.ChooseCard(state, available)
	}
	index, method, err := parseChoice(reply, available)
	if err != nil {
		l.logger.Warn("llm card reply unrecognized, using heuristic",
			zap.String("reply", reply), zap.Error(err))
		return l.fallback.ChooseCard(state, available)
	}
	return index, method
}

func (l *LLM) ask(prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), llmRequestTimeout)
	defer cancel()

	msg, err := l.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     l.model,
		MaxTokens: 64,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("agent: message request failed: %w", err)
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("agent: no text block in response")
}

const rulesPreamble = `You are playing Scoundrel, a single-player dungeon card game.
Monsters deal damage equal to their value; an equipped weapon reduces that
damage by its value, but once used it can only fight monsters weaker than its
last kill. Potions heal up to max health. You win by emptying the deck; health
at 0 means death. Be brief and answer in the exact format requested.`

func (l *LLM) avoidPrompt(state engine.State) string {
	var b strings.Builder
	b.WriteString(rulesPreamble)
	b.WriteString("\n\nCurrent state:\n")
	b.Write(stateJSON(state))
	b.WriteString("\n\nYou may avoid this room, sending all four cards to the bottom of the deck.")
	b.WriteString("\nAnswer with exactly one word: AVOID or ENTER.")
	return b.String()
}

func (l *LLM) choosePrompt(state engine.State, available []engine.RoomCard) string {
	var b strings.Builder
	b.WriteString(rulesPreamble)
	b.WriteString("\n\nCurrent state:\n")
	b.Write(stateJSON(state))
	b.WriteString("\n\nFace one of these cards:\n")
	for _, rc := range available {
		fmt.Fprintf(&b, "  index %d: %s (%s, value %d)\n", rc.Index, rc.Card.Name, rc.Card.Kind, rc.Card.Value)
	}
	b.WriteString("\nAnswer with the index, and for a monster add WEAPON or BAREHANDED.")
	b.WriteString("\nExamples: \"2\", \"0 WEAPON\", \"3 BAREHANDED\".")
	return b.String()
}

func stateJSON(state engine.State) []byte {
	data, err := json.Marshal(state)
	if err != nil {
		return []byte("{}")
	}
	return data
}

// parseChoice extracts an index and method from a model reply such as
// "2", "0 WEAPON", or "index 3, barehanded".
func parseChoice(reply string, available []engine.RoomCard) (int, engine.Method, error) {
	fields := strings.FieldsFunc(strings.ToLower(reply), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	index := -1
	method := engine.MethodAuto
	for _, f := range fields {
		if index < 0 && len(f) == 1 && f[0] >= '0' && f[0] <= '9' {
			index = int(f[0] - '0')
			continue
		}
		if m, err := engine.ParseMethod(f); err == nil && m != engine.MethodAuto {
			method = m
		}
	}
	if index < 0 {
		return 0, engine.MethodAuto, fmt.Errorf("agent: no index in reply %q", reply)
	}
	for _, rc := range available {
		if rc.Index == index {
			return index, method, nil
		}
	}
	return 0, engine.MethodAuto, fmt.Errorf("agent: index %d is not an available card", index)
}
