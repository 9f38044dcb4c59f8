package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"github.com/dualword/OpenTal/engine"
)

func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	threadsFlag := flag.Int("threads", 1, "worker thread count")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	var cpuFile *os.File
	var err error
	if *cpuProfile != "" {
		cpuFile, err = os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := gm.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	board, err := gm.ParseFEN(fen)
	if err != nil {
		log.Fatalf("ParseFEN error: %v", err)
	}

	eng := engine.NewEngine()
	eng.Par.SearchDepth = *depthFlag
	eng.Par.Threads = *threadsFlag

	for run := 0; run < *repeatFlag; run++ {
		eng.NewGame()
		eng.SetPosition(*board, []uint64{board.Hash()})
		start := time.Now()
		move := eng.Think()
		elapsed := time.Since(start)
		fmt.Printf("run %d: bestmove %s depth %d nodes %d time %v\n",
			run+1, move.String(), eng.DepthReached(), eng.Nodes(), elapsed)
	}

	if *memProfile != "" {
		memFile, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(memFile); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
		memFile.Close()
	}
}
