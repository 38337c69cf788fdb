package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- MultiLogger: fans events out to several sinks ---

// MultiLogger records events once and forwards each, already sequenced, to every sink.
type MultiLogger struct {
	MemoryLogger
	sinks []EventLogger
}

func NewMultiLogger(sinks ...EventLogger) *MultiLogger {
	return &MultiLogger{sinks: sinks}
}

// Add attaches more sinks. They only see events logged after the call.
func (l *MultiLogger) Add(sinks ...EventLogger) {
	l.sinks = append(l.sinks, sinks...)
}

func (l *MultiLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	ev := l.LastEvent()
	for _, s := range l.sinks {
		s.Log(ev)
	}
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewRoundEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d ===", round),
	}
}

// NewDrawEvent announces how many cards a player drew. Card titles stay private.
func NewDrawEvent(round int, phase string, player string, count int) GameEvent {
	noun := "cards"
	if count == 1 {
		noun = "card"
	}
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Value:   count,
		Details: fmt.Sprintf("%s draws %d %s", player, count, noun),
	}
}

func NewReshuffleEvent(round int, phase string, pile string, size int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventReshuffle,
		Value:   size,
		Details: fmt.Sprintf("Shuffling %s discard pile back into the deck (%d cards)", pile, size),
	}
}

func NewDeckExhaustedEvent(round int, phase string, player string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDeckExhausted,
		Details: fmt.Sprintf("No cards left for %s", player),
	}
}

func NewHandRedrawEvent(round int, phase string, player string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventHandRedraw,
		Details: fmt.Sprintf("%s has only instant cards! Discarding and redrawing", player),
	}
}

func NewDisasterDrawnEvent(round int, phase string, disaster string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDisasterDrawn,
		Card:    disaster,
		Details: fmt.Sprintf("DISASTER: %s!", disaster),
	}
}

func NewPlayCardEvent(round int, phase string, player string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayCard,
		Details: fmt.Sprintf("%s plays a point card face-down", player),
	}
}

func NewRevealEvent(round int, phase string, player string, cardName string, points int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventReveal,
		Card:    cardName,
		Value:   points,
		Details: fmt.Sprintf("%s: %s (%d)", player, cardName, points),
	}
}

func NewActivateEvent(round int, phase string, player string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventActivate,
		Card:    cardName,
		Details: fmt.Sprintf("%s activates %s", player, cardName),
	}
}

func NewEffectsCancelledEvent(round int, phase string, player string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectsCancelled,
		Card:    cardName,
		Details: fmt.Sprintf("%s stops all effects!", cardName),
	}
}

func NewEffectSkippedEvent(round int, phase string, player string, cardName string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectSkipped,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s does nothing (%s)", player, cardName, reason),
	}
}

func NewPointsChangeEvent(round int, phase string, player string, cardName string, oldPts, newPts int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventPointsChange,
		Card:    cardName,
		Value:   newPts,
		Details: fmt.Sprintf("%s's %s: %d → %d (%s)", player, cardName, oldPts, newPts, reason),
	}
}

func NewSwapEvent(round int, phase string, actor string, a string, aPts int, b string, bPts int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  actor,
		Type:    EventSwap,
		Details: fmt.Sprintf("Swap! %s's card is now worth %d and %s's card is worth %d", a, aPts, b, bPts),
	}
}

func NewStealEvent(round int, phase string, player string, victim string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventSteal,
		Details: fmt.Sprintf("%s stole a card from %s", player, victim),
	}
}

func NewDiscardEvent(round int, phase string, player string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", player, cardName),
	}
}

func NewAddToHandEvent(round int, phase string, player string, cardName string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventAddToHand,
		Card:    cardName,
		Details: fmt.Sprintf("A card is added to %s's hand (%s)", player, reason),
	}
}

func NewInstantEvent(round int, phase string, player string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventInstant,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays instant %s", player, cardName),
	}
}

func NewSuddenDeathEvent(round int, phase string, players []string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventSuddenDeath,
		Details: fmt.Sprintf("Tie for lowest! Sudden death between: %s", strings.Join(players, ", ")),
	}
}

func NewTiebreakEscapeEvent(round int, phase string, player string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventTiebreakEscape,
		Details: fmt.Sprintf("%s has no point cards and escapes the tiebreaker", player),
	}
}

func NewDisasterAssignedEvent(round int, phase string, player string, disaster string, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDisasterAssigned,
		Card:    disaster,
		Value:   count,
		Details: fmt.Sprintf("%s receives %s (%d total)", player, disaster, count),
	}
}

func NewDisasterInsuredEvent(round int, phase string, player string, disaster string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventDisasterInsured,
		Card:    disaster,
		Details: fmt.Sprintf("%s uses Disaster Insurance to avoid %s", player, disaster),
	}
}

func NewDisasterDiscardedEvent(round int, phase string, disaster string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDisasterDiscarded,
		Card:    disaster,
		Details: fmt.Sprintf("No player received %s", disaster),
	}
}

func NewRoundWinEvent(round int, phase string, player string, points int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventRoundWin,
		Value:   points,
		Details: fmt.Sprintf("%s wins the round with %d", player, points),
	}
}

func NewScoreChangeEvent(round int, phase string, player string, oldScore, newScore int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventScoreChange,
		Value:   newScore,
		Details: fmt.Sprintf("%s score: %d → %d (%s)", player, oldScore, newScore, reason),
	}
}

func NewEliminatedEvent(round int, phase string, player string, disasters int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  player,
		Type:    EventEliminated,
		Value:   disasters,
		Details: fmt.Sprintf("%s has been ELIMINATED! (%d disasters)", player, disasters),
	}
}

func NewWinEvent(round int, phase string, winner string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", winner, reason),
	}
}

func NewGameOverEvent(round int, phase string, result string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventGameOver,
		Details: result,
	}
}
