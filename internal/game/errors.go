package game

import "errors"

var (
	// ErrDeckExhausted is returned by a draw when both the draw and discard piles are empty.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrNoPointCards means a catalog would build a deck nobody can play from.
	ErrNoPointCards = errors.New("catalog has no point cards")

	// ErrUnknownEffect is returned for an effect tag the engine has no handler for.
	ErrUnknownEffect = errors.New("unknown effect")

	// ErrInvalidPlayers rejects a roster outside the supported size or with duplicate names.
	ErrInvalidPlayers = errors.New("invalid players")
)
