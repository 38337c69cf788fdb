package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewRound
	EventDraw
	EventReshuffle
	EventDeckExhausted
	EventHandRedraw
	EventDisasterDrawn
	EventPlayCard
	EventReveal
	EventActivate
	EventEffectsCancelled
	EventEffectSkipped
	EventPointsChange
	EventSwap
	EventSteal
	EventDiscard
	EventAddToHand
	EventInstant
	EventSuddenDeath
	EventTiebreakEscape
	EventDisasterAssigned
	EventDisasterInsured
	EventDisasterDiscarded
	EventRoundWin
	EventScoreChange
	EventEliminated
	EventWin
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewRound:
		return "NewRound"
	case EventDraw:
		return "Draw"
	case EventReshuffle:
		return "Reshuffle"
	case EventDeckExhausted:
		return "DeckExhausted"
	case EventHandRedraw:
		return "HandRedraw"
	case EventDisasterDrawn:
		return "DisasterDrawn"
	case EventPlayCard:
		return "PlayCard"
	case EventReveal:
		return "Reveal"
	case EventActivate:
		return "Activate"
	case EventEffectsCancelled:
		return "EffectsCancelled"
	case EventEffectSkipped:
		return "EffectSkipped"
	case EventPointsChange:
		return "PointsChange"
	case EventSwap:
		return "Swap"
	case EventSteal:
		return "Steal"
	case EventDiscard:
		return "Discard"
	case EventAddToHand:
		return "AddToHand"
	case EventInstant:
		return "Instant"
	case EventSuddenDeath:
		return "SuddenDeath"
	case EventTiebreakEscape:
		return "TiebreakEscape"
	case EventDisasterAssigned:
		return "DisasterAssigned"
	case EventDisasterInsured:
		return "DisasterInsured"
	case EventDisasterDiscarded:
		return "DisasterDiscarded"
	case EventRoundWin:
		return "RoundWin"
	case EventScoreChange:
		return "ScoreChange"
	case EventEliminated:
		return "Eliminated"
	case EventWin:
		return "Win"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Phase   string    // current phase name (e.g. "Resolve Effects")
	Player  string    // acting player's name, empty for table events
	Type    EventType // event type
	Card    string    // card title (if applicable)
	Value   int       // points or score involved (if applicable)
	Details string    // human-readable detail string
}
