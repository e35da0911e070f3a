package engine

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/exp/rand"

	"jump61/game"
	"jump61/metrics"
	"jump61/searcher"
)

// Player supplies moves for one side of a game.
type Player interface {
	Side() game.Side
	FindMove(b *game.Board) (game.Move, error)
}

// AIPlayer chooses moves with a minimax searcher.
type AIPlayer struct {
	side     game.Side
	searcher *searcher.Minimax
}

func NewAIPlayer(side game.Side, m *searcher.Minimax) *AIPlayer {
	return &AIPlayer{side: side, searcher: m}
}

func (p *AIPlayer) Side() game.Side {
	return p.side
}

func (p *AIPlayer) FindMove(b *game.Board) (game.Move, error) {
	return p.searcher.FindMove(b, p.side)
}

// Metrics returns measurements from the player's most recent search.
func (p *AIPlayer) Metrics() metrics.SearchMetric {
	return p.searcher.Metrics()
}

// RandomPlayer picks uniformly among the legal squares using a seeded
// generator, so a fixed seed replays the same game. Useful as a weak
// baseline opponent and for randomized engine tests.
type RandomPlayer struct {
	side game.Side
	rng  *rand.Rand
}

func NewRandomPlayer(side game.Side, seed uint64) *RandomPlayer {
	return &RandomPlayer{
		side: side,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomPlayer) Side() game.Side {
	return p.side
}

func (p *RandomPlayer) FindMove(b *game.Board) (game.Move, error) {
	moves := legalMoves(b, p.side)
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("random player %s: no legal moves", p.side)
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// ScriptedPlayer replays a fixed move list, in order. It errors when the
// script runs out.
type ScriptedPlayer struct {
	side  game.Side
	moves []game.Move
	next  int
}

func NewScriptedPlayer(side game.Side, moves []game.Move) *ScriptedPlayer {
	return &ScriptedPlayer{side: side, moves: moves}
}

func (p *ScriptedPlayer) Side() game.Side {
	return p.side
}

func (p *ScriptedPlayer) FindMove(b *game.Board) (game.Move, error) {
	if p.next >= len(p.moves) {
		return game.Move{}, fmt.Errorf("scripted player %s: out of moves after %d", p.side, p.next)
	}
	move := p.moves[p.next]
	p.next++
	return move, nil
}

// HumanPlayer reads "row col" move pairs from a reader, printing the
// board and a prompt before each read and re-prompting on malformed or
// illegal input.
type HumanPlayer struct {
	side game.Side
	in   *bufio.Scanner
	out  io.Writer
}

func NewHumanPlayer(side game.Side, in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		side: side,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (p *HumanPlayer) Side() game.Side {
	return p.side
}

func (p *HumanPlayer) FindMove(b *game.Board) (game.Move, error) {
	view := b.Readonly()
	fmt.Fprintf(p.out, "%s\n", view.DisplayString())
	for {
		fmt.Fprintf(p.out, "%s> ", p.side)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return game.Move{}, fmt.Errorf("human player %s: %w", p.side, err)
			}
			return game.Move{}, fmt.Errorf("human player %s: input closed: %w", p.side, io.EOF)
		}
		var move game.Move
		_, err := fmt.Sscanf(p.in.Text(), "%d %d", &move.Row, &move.Col)
		if err != nil {
			fmt.Fprintf(p.out, "expected a move as \"row col\"\n")
			continue
		}
		if !b.IsLegal(p.side, move.Row, move.Col) {
			fmt.Fprintf(p.out, "illegal move for %s: %s\n", p.side, move)
			continue
		}
		return move, nil
	}
}

// legalMoves lists every square side may currently play, in row-major
// order.
func legalMoves(b *game.Board, side game.Side) []game.Move {
	var moves []game.Move
	for r := 1; r <= b.Size(); r++ {
		for c := 1; c <= b.Size(); c++ {
			if b.IsLegal(side, r, c) {
				moves = append(moves, game.Move{Row: r, Col: c})
			}
		}
	}
	return moves
}
