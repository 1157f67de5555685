package engine

import (
	"testing"

	"chess-ai/board"
)

func TestMVVLVA(t *testing.T) {
	tests := []struct {
		name     string
		attacker board.Piece
		victim   board.Piece
		want     int
	}{
		{"pawn takes queen", board.WhitePawn, board.BlackQueen, 89},
		{"queen takes pawn", board.WhiteQueen, board.BlackPawn, 1},
		{"knight takes rook", board.BlackKnight, board.WhiteRook, 47},
		{"king takes pawn", board.WhiteKing, board.BlackPawn, -990},
		{"quiet", board.WhiteRook, board.NoPiece, 0},
	}
	for _, tt := range tests {
		m := board.Move{Piece: tt.attacker, Captured: tt.victim}
		if got := MVVLVA(m); got != tt.want {
			t.Fatalf("%s: MVVLVA = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestOrderMovesPutsCapturesFirst(t *testing.T) {
	pos, err := board.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	moves := OrderMoves(pos, pos.LegalMoves())
	if len(moves) != 48 {
		t.Fatalf("expected 48 legal moves, got %d", len(moves))
	}
	prev := MVVLVA(moves[0])
	seenQuiet := false
	for _, m := range moves {
		v := MVVLVA(m)
		if v > prev {
			t.Fatalf("%s (mvv-lva %d) sorted after a move scoring %d", m, v, prev)
		}
		if !m.IsCapture() {
			seenQuiet = true
		} else if seenQuiet && v > 0 {
			t.Fatalf("capture %s sorted after a quiet move", m)
		}
		prev = v
	}
}

func TestOrderMovesChecksBeforeQuiet(t *testing.T) {
	pos, err := board.LoadFEN("3k4/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	moves := OrderMoves(pos, pos.LegalMoves())
	checks := 0
	for i, m := range moves {
		if givesCheck(pos, m) {
			if i != checks {
				t.Fatalf("checking move %s at index %d after %d quiet moves", m, i, i-checks)
			}
			checks++
		}
	}
	if checks != 2 {
		t.Fatalf("expected Ra8+ and Rd1+, got %d checking moves", checks)
	}
}

func TestOrderMovesFirstAndKillers(t *testing.T) {
	pos, err := board.LoadFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	legal := pos.LegalMoves()
	first, killer := legal[len(legal)-1], legal[len(legal)-2]

	k := newKillerTable()
	k.insert(killer, 3)
	moves := orderMoves(pos, append([]board.Move(nil), legal...), first, k.at(3))
	if !moves[0].SameAs(first) {
		t.Fatalf("expected %s first, got %s", first, moves[0])
	}
	if !moves[1].SameAs(killer) {
		t.Fatalf("expected killer %s second, got %s", killer, moves[1])
	}
	if len(moves) != len(legal) {
		t.Fatalf("ordering lost moves: %d of %d", len(moves), len(legal))
	}
}

func TestOrderMovesIsStable(t *testing.T) {
	pos, err := board.LoadFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	legal := pos.LegalMoves()
	ordered := OrderMoves(pos, append([]board.Move(nil), legal...))
	for i := range legal {
		if !legal[i].SameAs(ordered[i]) {
			t.Fatalf("quiet start position reordered at %d: %s vs %s", i, legal[i], ordered[i])
		}
	}
}

func TestKillerTable(t *testing.T) {
	pos, _ := board.LoadFEN(board.FENStartPos)
	legal := pos.LegalMoves()
	k := newKillerTable()
	k.insert(legal[0], 2)
	k.insert(legal[1], 2)
	k.insert(legal[1], 2)
	if got := k.at(2); !got[0].SameAs(legal[1]) || !got[1].SameAs(legal[0]) {
		t.Fatalf("killers at ply 2 = %v", got)
	}
	if k.at(maxPly+1) != nil {
		t.Fatalf("expected nil beyond maxPly")
	}
	k.clear()
	if !k.at(2)[0].IsNull() {
		t.Fatalf("clear left %s", k.at(2)[0])
	}
}

func TestTransTable(t *testing.T) {
	pos, _ := board.LoadFEN(board.FENStartPos)
	legal := pos.LegalMoves()
	tt := NewTransTable(4)
	if !tt.Move(123).IsNull() {
		t.Fatalf("empty table returned a move")
	}
	tt.Store(123, 4, legal[0])
	tt.Store(123, 2, legal[1])
	if got := tt.Move(123); !got.SameAs(legal[0]) {
		t.Fatalf("shallower store replaced deeper entry: %s", got)
	}
	tt.Store(123, 5, legal[2])
	if got := tt.Move(123); !got.SameAs(legal[2]) {
		t.Fatalf("deeper store ignored: %s", got)
	}
	var nilTable *TransTable
	nilTable.Store(1, 1, legal[0])
	if !nilTable.Move(1).IsNull() {
		t.Fatalf("nil table returned a move")
	}
}
