// UCI front end: reads line commands on stdin, drives the engine, and
// answers on stdout. Anything malformed is reported as an info string and
// the line is dropped.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	dragon "github.com/Bubblyworld/dragontoothmg"

	"pesto-engine/engine"
)

func main() {
	uciLoop(os.Stdin)
}

func uciLoop(input io.Reader) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	board := dragon.ParseFen(dragon.Startpos)
	eng := engine.NewEngine()
	eng.Repetition.Add(board.Hash())

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name PestoPasta 2.0")
			fmt.Println("id author the PestoPasta authors")
			fmt.Println("option name Hash type spin default 32 min 1 max 1024")
			fmt.Println("option name MoveOverhead type spin default 0 min 0 max 1000")
			fmt.Println("uciok")

		case "isready":
			fmt.Println("readyok")

		case "ucinewgame":
			board = dragon.ParseFen(dragon.Startpos)
			eng.NewGame()
			eng.Repetition.Add(board.Hash())

		case "position":
			if newBoard, ok := applyPosition(eng, line); ok {
				board = newBoard
			}

		case "go":
			params := parseGo(line)
			limit := engine.CalcTimeBudget(
				params.movetime,
				params.remaining(board.Wtomove),
				params.increment(board.Wtomove),
				eng.MoveOverhead,
			)
			best, _ := eng.Search(&board, params.depth, limit)
			fmt.Println("bestmove", engine.MoveString(best))

		case "setoption":
			applyOption(eng, tokens)

		case "stop":
			eng.Stop()

		case "quit":
			return

		default:
			fmt.Println("info string Unknown command", tokens[0])
		}
	}
}

// applyPosition handles `position startpos|fen <FEN> [moves m1 m2 ...]`.
// It rebuilds the repetition history from the replayed moves. On an
// illegal or unparseable move the position is left at the last
// successfully applied move.
func applyPosition(eng *engine.Engine, line string) (dragon.Board, bool) {
	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanWords)
	scanner.Scan() // "position"

	var board dragon.Board
	if !scanner.Scan() {
		fmt.Println("info string Malformed position command")
		return board, false
	}

	switch strings.ToLower(scanner.Text()) {
	case "startpos":
		board = dragon.ParseFen(dragon.Startpos)
		scanner.Scan() // optional "moves"
	case "fen":
		fenstr := ""
		for scanner.Scan() && strings.ToLower(scanner.Text()) != "moves" {
			fenstr += scanner.Text() + " "
		}
		if fenstr == "" {
			fmt.Println("info string Invalid fen position")
			return board, false
		}
		board = dragon.ParseFen(strings.TrimSpace(fenstr))
	default:
		fmt.Println("info string Invalid position subcommand")
		return board, false
	}

	eng.Repetition = make(engine.RepetitionTable)
	eng.Repetition.Add(board.Hash())

	for scanner.Scan() {
		moveStr := strings.ToLower(scanner.Text())
		move, ok := findLegalMove(&board, moveStr)
		if !ok {
			fmt.Println("info string Move", moveStr, "not legal in position", board.ToFen())
			break
		}
		board.Apply(move)
		eng.Repetition.Add(board.Hash())
	}
	return board, true
}

// findLegalMove matches a UCI move string against the legal moves of the
// position, falling back to a from/to/promotion comparison of the parsed
// move for encodings that don't round trip through String.
func findLegalMove(board *dragon.Board, moveStr string) (dragon.Move, bool) {
	legal := board.GenerateLegalMoves()
	for _, mv := range legal {
		if mv.String() == moveStr {
			return mv, true
		}
	}
	parsed, err := dragon.ParseMove(moveStr)
	if err != nil {
		return engine.NoMove, false
	}
	for _, mv := range legal {
		if mv.From() == parsed.From() && mv.To() == parsed.To() && mv.Promote() == parsed.Promote() {
			return mv, true
		}
	}
	return engine.NoMove, false
}

type goParams struct {
	depth    int
	movetime int
	wtime    int
	btime    int
	winc     int
	binc     int
}

func (p *goParams) remaining(whiteToMove bool) int {
	if whiteToMove {
		return p.wtime
	}
	return p.btime
}

func (p *goParams) increment(whiteToMove bool) int {
	if whiteToMove {
		return p.winc
	}
	return p.binc
}

// parseGo reads the supported `go` options; unknown tokens are skipped so
// a GUI sending extras doesn't derail the search.
func parseGo(line string) goParams {
	var params goParams

	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanWords)
	scanner.Scan() // "go"

	readInt := func(name string) int {
		if !scanner.Scan() {
			fmt.Println("info string Malformed go option", name)
			return 0
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			fmt.Println("info string Could not parse go option", name)
			return 0
		}
		return v
	}

	for scanner.Scan() {
		switch strings.ToLower(scanner.Text()) {
		case "depth":
			params.depth = readInt("depth")
		case "movetime":
			params.movetime = readInt("movetime")
		case "wtime":
			params.wtime = readInt("wtime")
		case "btime":
			params.btime = readInt("btime")
		case "winc":
			params.winc = readInt("winc")
		case "binc":
			params.binc = readInt("binc")
		case "infinite":
			// Depth-capped only.
		}
	}
	return params
}

// applyOption handles `setoption name <Name> value <v>`.
func applyOption(eng *engine.Engine, tokens []string) {
	name, value := "", ""
	for i := 1; i < len(tokens)-1; i++ {
		switch strings.ToLower(tokens[i]) {
		case "name":
			name = tokens[i+1]
		case "value":
			value = tokens[i+1]
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			fmt.Println("info string Invalid Hash value", value)
			return
		}
		eng.TT.InitMB(mb)
	case "moveoverhead":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			fmt.Println("info string Invalid MoveOverhead value", value)
			return
		}
		eng.MoveOverhead = int64(ms)
	default:
		fmt.Println("info string Unknown option", name)
	}
}
