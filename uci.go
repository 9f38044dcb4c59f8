package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/exp/slices"

	"github.com/dualword/OpenTal/engine"
)

func main() {
	uciLoop()
}

type uciOption struct {
	kind string
	def  string
	min  int
	max  int
}

var uciOptions = map[string]uciOption{
	"Hash":         {kind: "spin", def: "16", min: 1, max: 4096},
	"Threads":      {kind: "spin", def: "1", min: 1, max: 64},
	"Contempt":     {kind: "spin", def: "0", min: -200, max: 200},
	"NpsLimit":     {kind: "spin", def: "0", min: 0, max: 10000000},
	"HistLimit":    {kind: "spin", def: "4096", min: 0, max: 16384},
	"MoveOverhead": {kind: "spin", def: "30", min: 0, max: 5000},
	"Ponder":       {kind: "check", def: "false"},
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	board, _ := gm.ParseFEN(gm.FENStartPos)
	eng := engine.NewEngine()
	gameHist := []uint64{board.Hash()}
	var searchDone chan struct{}

	searching := func() bool {
		if searchDone == nil {
			return false
		}
		select {
		case <-searchDone:
			searchDone = nil
			return false
		default:
			return true
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		cmd := strings.ToLower(tokens[0])

		if searching() {
			switch cmd {
			case "stop", "ponderhit", "quit":
				eng.PostInput(cmd)
				if cmd == "quit" {
					<-searchDone
					return
				}
			case "isready":
				fmt.Println("readyok")
			default:
				fmt.Println("info string busy searching, ignored:", line)
			}
			continue
		}

		switch cmd {
		case "uci":
			fmt.Println("id name OpenTal")
			fmt.Println("id author dualword")
			names := make([]string, 0, len(uciOptions))
			for name := range uciOptions {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				opt := uciOptions[name]
				if opt.kind == "check" {
					fmt.Printf("option name %s type check default %s\n", name, opt.def)
				} else {
					fmt.Printf("option name %s type spin default %s min %d max %d\n", name, opt.def, opt.min, opt.max)
				}
			}
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			board, _ = gm.ParseFEN(gm.FENStartPos)
			gameHist = []uint64{board.Hash()}
			eng.NewGame()
		case "position":
			board, gameHist = parsePosition(tokens, board, gameHist)
		case "setoption":
			applyOption(eng, tokens)
		case "go":
			limits := parseGo(tokens[1:])
			th := engine.NewTimeHandler(eng.Par.MoveOverhead)
			eng.Par.SearchDepth = engine.MaxPly
			if limits.Depth > 0 {
				eng.Par.SearchDepth = engine.Min(limits.Depth, engine.MaxPly)
			}
			eng.Par.MoveTime = th.MoveTimeMs(limits, board.SideToMove() == gm.White)
			eng.Par.MoveNodes = limits.Nodes
			eng.SetPondering(limits.Ponder)
			eng.SetPosition(*board, gameHist)

			searchDone = make(chan struct{})
			go func() {
				move := eng.Think()
				fmt.Println("bestmove", moveString(move))
				close(searchDone)
			}()
		case "moveordering":
			eng.SetPosition(*board, gameHist)
			eng.DumpRootOrdering()
		case "quit":
			return
		default:
			fmt.Println("info string Unknown command:", line)
		}
	}
}

func moveString(move gm.Move) string {
	if move == 0 {
		return "0000"
	}
	return move.String()
}

// parsePosition handles "position [startpos | fen <fen>] [moves ...]",
// rebuilding the game hash history as it replays the moves.
func parsePosition(tokens []string, board *gm.Board, gameHist []uint64) (*gm.Board, []uint64) {
	i := 1
	if i < len(tokens) && strings.ToLower(tokens[i]) == "startpos" {
		board, _ = gm.ParseFEN(gm.FENStartPos)
		i++
	} else if i < len(tokens) && strings.ToLower(tokens[i]) == "fen" {
		i++
		fenFields := make([]string, 0, 6)
		for i < len(tokens) && strings.ToLower(tokens[i]) != "moves" {
			fenFields = append(fenFields, tokens[i])
			i++
		}
		parsed, err := gm.ParseFEN(strings.Join(fenFields, " "))
		if err != nil {
			fmt.Println("info string bad fen:", err)
			return board, gameHist
		}
		board = parsed
	}
	gameHist = append(gameHist[:0], board.Hash())

	if i < len(tokens) && strings.ToLower(tokens[i]) == "moves" {
		for _, moveStr := range tokens[i+1:] {
			move, ok := findLegalMove(board, strings.ToLower(moveStr))
			if !ok {
				fmt.Println("info string move", moveStr, "not found for position", board.ToFEN())
				break
			}
			board.Apply(move)
			gameHist = append(gameHist, board.Hash())
		}
	}
	return board, gameHist
}

func findLegalMove(board *gm.Board, moveStr string) (gm.Move, bool) {
	for _, mv := range board.GenerateLegalMoves() {
		if mv.String() == moveStr {
			return mv, true
		}
	}
	parsed, err := gm.ParseMove(moveStr)
	if err != nil {
		return 0, false
	}
	for _, mv := range board.GenerateLegalMoves() {
		if mv.From() == parsed.From() && mv.To() == parsed.To() &&
			mv.PromotionPieceType() == parsed.PromotionPieceType() {
			return mv, true
		}
	}
	return 0, false
}

func parseGo(tokens []string) engine.Limits {
	var limits engine.Limits
	nextInt := func(i int) int64 {
		if i+1 >= len(tokens) {
			return 0
		}
		v, _ := strconv.ParseInt(tokens[i+1], 10, 64)
		return v
	}
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "depth":
			limits.Depth = int(nextInt(i))
		case "movetime":
			limits.MoveTime = nextInt(i)
		case "nodes":
			limits.Nodes = nextInt(i)
		case "wtime":
			limits.WhiteTime = nextInt(i)
		case "btime":
			limits.BlackTime = nextInt(i)
		case "winc":
			limits.WhiteInc = nextInt(i)
		case "binc":
			limits.BlackInc = nextInt(i)
		case "movestogo":
			limits.MovesToGo = int(nextInt(i))
		case "infinite":
			limits.Infinite = true
		case "ponder":
			limits.Ponder = true
		}
	}
	return limits
}

func applyOption(eng *engine.Engine, tokens []string) {
	var name, value string
	for i := 1; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "name":
			if i+1 < len(tokens) {
				name = tokens[i+1]
			}
		case "value":
			if i+1 < len(tokens) {
				value = tokens[i+1]
			}
		}
	}

	atoi := func(def int) int {
		v, err := strconv.Atoi(value)
		if err != nil {
			return def
		}
		return v
	}

	switch strings.ToLower(name) {
	case "hash":
		eng.Par.Hash = atoi(eng.Par.Hash)
	case "threads":
		eng.Par.Threads = atoi(eng.Par.Threads)
	case "contempt":
		eng.Par.DrawScore = atoi(eng.Par.DrawScore)
	case "npslimit":
		eng.Par.NpsLimit = atoi(eng.Par.NpsLimit)
	case "histlimit":
		eng.Par.HistLimit = atoi(eng.Par.HistLimit)
	case "moveoverhead":
		eng.Par.MoveOverhead = atoi(eng.Par.MoveOverhead)
	case "ponder":
		eng.Par.Ponder = strings.EqualFold(value, "true")
	default:
		fmt.Println("info string unknown option:", name)
	}
}
